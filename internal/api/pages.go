package api

import (
	"embed"
	"encoding/base64"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suprajagandikota3-max/designer-app/internal/config"
	imagepkg "github.com/suprajagandikota3-max/designer-app/internal/image"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	previewMaxWidth  = 600
	previewMaxHeight = 400

	msgRenderFailed = "Something went wrong while generating your design. Please try again."
	msgSuccess      = "Design Generated Successfully!"
)

// Templates parses the embedded HTML templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// pageData feeds templates/index.html.
type pageData struct {
	Form       designForm
	Canvas     config.CanvasConfig
	Fonts      []string
	Alignments []string
	Designs    int

	Warning string
	Error   string
	Success string

	PreviewURI   template.URL
	DownloadURI  template.URL
	Filename     string
	FontFallback bool

	Prompt         string
	Suggestions    []string
	SuggestSource  string
	SuggestWarning string
}

func (h *Handlers) newPage(c *gin.Context, form designForm) pageData {
	sess := h.session(c)
	return pageData{
		Form:       form,
		Canvas:     h.canvas,
		Fonts:      h.fonts.Names(),
		Alignments: []string{"left", "center", "right"},
		Designs:    sess.Designs,
		Filename:   DownloadFilename,
		Prompt:     sess.LastPrompt,
	}
}

// indexPage shows the empty form. Text comes from ?text= or the last design.
func (h *Handlers) indexPage(c *gin.Context) {
	form := defaultForm(h.canvas)
	if text := c.Query("text"); text != "" {
		form.Text = text
	} else {
		form.Text = h.session(c).LastText
	}
	c.HTML(http.StatusOK, "index.html", h.newPage(c, form))
}

// designPage handles the form submit: it renders, previews and offers the
// download, or explains why not.
func (h *Handlers) designPage(c *gin.Context) {
	form := defaultForm(h.canvas)
	if err := c.ShouldBind(&form); err != nil {
		page := h.newPage(c, form)
		page.Warning = "Please check the form values."
		c.HTML(http.StatusBadRequest, "index.html", page)
		return
	}

	out, err := h.render(form)
	if err != nil {
		page := h.newPage(c, form)
		if isValidation(err) {
			page.Warning = err.Error()
			c.HTML(http.StatusBadRequest, "index.html", page)
			return
		}
		slog.Error("render failed", "error", err)
		page.Error = msgRenderFailed
		c.HTML(http.StatusInternalServerError, "index.html", page)
		return
	}
	h.recordDesign(c, form.Text)

	preview, err := imagepkg.EncodePNG(imagepkg.Preview(out.Image, previewMaxWidth, previewMaxHeight))
	if err != nil {
		slog.Error("preview encode failed", "error", err)
		page := h.newPage(c, form)
		page.Error = msgRenderFailed
		c.HTML(http.StatusInternalServerError, "index.html", page)
		return
	}

	page := h.newPage(c, form)
	page.Success = msgSuccess
	page.PreviewURI = dataURI(preview)
	page.DownloadURI = dataURI(out.PNG)
	page.FontFallback = out.FontFallback
	c.HTML(http.StatusOK, "index.html", page)
}

// suggestPage shows caption suggestions next to the form.
func (h *Handlers) suggestPage(c *gin.Context) {
	form := defaultForm(h.canvas)
	form.Text = h.session(c).LastText
	prompt := strings.TrimSpace(c.Query("prompt"))

	if prompt == "" {
		page := h.newPage(c, form)
		page.SuggestWarning = "Please describe what the design is about."
		c.HTML(http.StatusBadRequest, "index.html", page)
		return
	}

	list, source, err := h.suggestions(c, prompt)
	page := h.newPage(c, form)
	page.Prompt = prompt
	page.Suggestions = list
	page.SuggestSource = source
	if err != nil {
		page.SuggestWarning = "AI suggestions unavailable, showing built-in ideas."
	}
	c.HTML(http.StatusOK, "index.html", page)
}

func dataURI(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
