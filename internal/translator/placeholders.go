package translator

import (
	"fmt"

	"github.com/crowdwisdom/marketbrief/internal/models"
)

// Static per-language fallback bodies. These are pre-written boilerplate,
// unrelated to the current digest; provenance marks them as placeholders so
// downstream consumers can disclose the substitution.
var placeholders = map[string]string{
	models.Arabic.Code: "الملخص المالي اليومي\n\n" +
		"التطورات الرئيسية في السوق:\n" +
		"• مؤشر S&P 500 وناسداك يظهران حركة مختلطة\n" +
		"• إعلانات أرباح الشركات الكبرى\n" +
		"• تحديثات السياسة النقدية للاحتياطي الفيدرالي\n\n" +
		"نظرة عامة على التداول:\n" +
		"يجب على المستثمرين مراقبة تقارير الأرباح القادمة والمؤشرات الاقتصادية.",
	models.Hindi.Code: "दैनिक वित्तीय बाजार सारांश\n\n" +
		"मुख्य बाजार विकास:\n" +
		"• S&P 500 और नैस्डैक में मिश्रित गतिविधि\n" +
		"• प्रमुख कॉर्पोरेट आय घोषणाएं\n" +
		"• फेडरल रिजर्व नीति अपडेट\n\n" +
		"ट्रेडिंग आउटलुक:\n" +
		"निवेशकों को आगामी आय रिपोर्ट और आर्थिक डेटा पर नजर रखनी चाहिए।",
	models.Hebrew.Code: "סיכום שוק פיננסי יומי\n\n" +
		"התפתחויות מפתח בשוק:\n" +
		"• S&P 500 ונאסד\"ק מציגים תנועה מעורבת\n" +
		"• הכרזות רווחים של חברות גדולות\n" +
		"• עדכוני מדיניות הפדרל ריזרב\n\n" +
		"תחזית מסחר:\n" +
		"משקיעים צריכים לעקוב אחר דוחות רווחים קרובים ונתונים כלכליים.",
}

// Placeholder returns the fixed substitute body for a language.
func Placeholder(lang models.Language) string {
	if body, ok := placeholders[lang.Code]; ok {
		return body
	}
	return fmt.Sprintf("Translation to %s is unavailable.", lang.Name)
}
