package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suprajagandikota3-max/designer-app/internal/config"
	"github.com/suprajagandikota3-max/designer-app/internal/fonts"
	imagepkg "github.com/suprajagandikota3-max/designer-app/internal/image"
	"github.com/suprajagandikota3-max/designer-app/internal/session"
	"github.com/suprajagandikota3-max/designer-app/internal/suggest"
)

// Options wires the handlers to their collaborators.
type Options struct {
	Canvas    config.CanvasConfig
	Fonts     *fonts.Loader
	Suggest   *suggest.Service
	Sessions  *session.Store
	OutputDir string
}

// Handlers serves the form pages and the JSON/PNG API.
type Handlers struct {
	canvas    config.CanvasConfig
	fonts     *fonts.Loader
	suggest   *suggest.Service
	sessions  *session.Store
	outputDir string
}

// NewHandlers creates Handlers. Nil collaborators get working defaults.
func NewHandlers(opts Options) *Handlers {
	h := &Handlers{
		canvas:    opts.Canvas,
		fonts:     opts.Fonts,
		suggest:   opts.Suggest,
		sessions:  opts.Sessions,
		outputDir: opts.OutputDir,
	}
	if h.fonts == nil {
		h.fonts = fonts.NewLoader("", "")
	}
	if h.suggest == nil {
		h.suggest = suggest.NewService(nil, nil)
	}
	if h.sessions == nil {
		h.sessions = session.NewStore(0)
	}
	return h
}

// health
func (h *Handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// designHandler renders a design from JSON or form input and returns the PNG
// as a download.
func (h *Handlers) designHandler(c *gin.Context) {
	form := defaultForm(h.canvas)
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.render(form)
	if err != nil {
		if isValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("render failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render design"})
		return
	}
	h.recordDesign(c, form.Text)

	c.Header("Content-Disposition", `attachment; filename="`+DownloadFilename+`"`)
	c.Header("X-Font-Fallback", strconv.FormatBool(out.FontFallback))
	c.Data(http.StatusOK, "image/png", out.PNG)
}

// suggestionsHandler returns caption suggestions for the "prompt" query param.
func (h *Handlers) suggestionsHandler(c *gin.Context) {
	prompt := strings.TrimSpace(c.Query("prompt"))
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	list, source, err := h.suggestions(c, prompt)
	resp := gin.H{"suggestions": list, "source": source}
	if err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// feedbackHandler returns short design feedback for a JSON {"prompt": ...} body.
func (h *Handlers) feedbackHandler(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": h.suggest.Feedback(c.Request.Context(), req.Prompt)})
}

// qr endpoint returns a PNG of a QR for "text" query param
func (h *Handlers) qrHandler(c *gin.Context) {
	const maxSize = 2048

	text := c.Query("text")
	if text == "" {
		text = "designer"
	}
	size := 400
	if sizeStr := c.Query("size"); sizeStr != "" {
		v, err := strconv.Atoi(sizeStr)
		if err != nil || v <= 0 || v > maxSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and " + strconv.Itoa(maxSize)})
			return
		}
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// fontsHandler lists the named fonts available to designs.
func (h *Handlers) fontsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fonts": h.fonts.Names()})
}

// suggestions looks up captions for prompt, reusing the session's cached list
// for a repeated prompt.
func (h *Handlers) suggestions(c *gin.Context, prompt string) ([]string, string, error) {
	sess := h.session(c)
	if list, ok := sess.CachedSuggestions(prompt); ok {
		return list, "cache", nil
	}

	res := h.suggest.Suggest(c.Request.Context(), prompt)
	h.sessions.Update(sess.ID, func(s *session.Session) {
		s.LastPrompt = prompt
		s.Suggestions = res.Suggestions
	})
	return res.Suggestions, string(res.Source), res.Err
}
