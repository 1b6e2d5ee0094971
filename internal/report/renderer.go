package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/crowdwisdom/marketbrief/internal/models"
	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
)

// Renderer lays out the digest, its translations and up to maxImages images
// into a paginated A4 document. Missing fonts and broken images downgrade
// the output; only a document that cannot be written at all is an error.
type Renderer struct {
	outputDir   string
	fontsDir    string
	fontPath    string
	fontTimeout time.Duration
	maxImages   int
	logger      *slog.Logger
}

func NewRenderer(outputDir, fontsDir, fontPath string, fontTimeout time.Duration, maxImages int, logger *slog.Logger) *Renderer {
	return &Renderer{
		outputDir:   outputDir,
		fontsDir:    fontsDir,
		fontPath:    fontPath,
		fontTimeout: fontTimeout,
		maxImages:   maxImages,
		logger:      logger,
	}
}

func (r *Renderer) Render(digest models.Digest, translations []models.TranslatedDigest, images []models.ImageRef, runID string) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Daily Financial Market Summary", true)
	pdf.SetAutoPageBreak(true, 15)

	family, fontFile := resolveFont(r.fontPath, r.fontsDir, r.fontTimeout, r.logger)
	if fontFile != "" {
		pdf.AddUTF8Font(family, "", fontFile)
		if pdf.Err() {
			r.logger.Warn("unicode font rejected, using built-in font", "error", pdf.Error())
			pdf = fpdf.New("P", "mm", "A4", "")
			pdf.SetTitle("Daily Financial Market Summary", true)
			pdf.SetAutoPageBreak(true, 15)
			family = builtinFontFamily
		}
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(family, "", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Title and metadata blocks.
	pdf.SetFont(family, "", 18)
	pdf.CellFormat(0, 12, "Daily Financial Market Summary", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont(family, "", 10)
	pdf.CellFormat(0, 6, "Date: "+digest.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Source: aggregated US financial news", "", 1, "L", false, 0, "")
	if digest.Provenance == models.ProvenanceTemplateFallback {
		pdf.CellFormat(0, 6, "Note: summary generated without model assistance", "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	r.addImages(pdf, family, images)
	r.addEnglishSection(pdf, family, digest)

	for _, td := range translations {
		r.addTranslationSection(pdf, family, td)
	}

	path := filepath.Join(r.outputDir, fmt.Sprintf("financial_report_%s.pdf", runID))
	if err := r.write(pdf, path); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	r.logger.Info("report rendered", "path", path, "images", len(images), "languages", len(translations))
	return path, nil
}

func (r *Renderer) addImages(pdf *fpdf.Fpdf, family string, images []models.ImageRef) {
	added := 0
	for _, ref := range images {
		if r.maxImages > 0 && added >= r.maxImages {
			break
		}
		// Validate before handing the file to fpdf: a bad image would
		// poison the document's sticky error state.
		if _, err := imaging.Open(ref.LocalPath); err != nil {
			r.logger.Warn("skipping unloadable image", "path", ref.LocalPath, "error", err)
			continue
		}

		pdf.ImageOptions(ref.LocalPath, (210-120)/2, pdf.GetY(), 120, 0, true,
			fpdf.ImageOptions{ReadDpi: true}, 0, "")
		if ref.Caption != "" {
			pdf.SetFont(family, "", 8)
			pdf.CellFormat(0, 5, ref.Caption, "", 1, "C", false, 0, "")
		}
		pdf.Ln(4)
		added++
	}
}

func (r *Renderer) addEnglishSection(pdf *fpdf.Fpdf, family string, digest models.Digest) {
	pdf.SetFont(family, "", 14)
	pdf.CellFormat(0, 10, "English Summary", "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 10)

	for i, point := range BulletPoints(digest.Body) {
		pdf.MultiCell(0, 5.5, fmt.Sprintf("%d. %s", i+1, point), "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(6)
}

func (r *Renderer) addTranslationSection(pdf *fpdf.Fpdf, family string, td models.TranslatedDigest) {
	pdf.SetFont(family, "", 14)
	header := fmt.Sprintf("%s (%s) Summary", td.Language.Name, td.Language.NativeName)
	pdf.CellFormat(0, 10, header, "", 1, "L", false, 0, "")

	if td.Provenance == models.ProvenancePlaceholder {
		pdf.SetFont(family, "", 8)
		pdf.CellFormat(0, 5, "Automatic translation unavailable; placeholder text shown.", "", 1, "L", false, 0, "")
	}

	pdf.SetFont(family, "", 10)
	align := "L"
	if td.Language.RTL {
		align = "R"
		pdf.RTL()
	}
	pdf.MultiCell(0, 5.5, td.Body, "", align, false)
	if td.Language.RTL {
		pdf.LTR()
	}
	pdf.Ln(6)
}

// write persists the document with temp-then-rename so an interrupted run
// never leaves a partial report at the final path.
func (r *Renderer) write(pdf *fpdf.Fpdf, path string) error {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.outputDir, ".report-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := pdf.Output(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
