package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/bib-comb/app/bibtex"
	"github.com/lysyi3m/bib-comb/app/database"
	"github.com/lysyi3m/bib-comb/app/normalize"
)

const maxBodySize = 10 << 20

func NewHandler(parser ParserInterface, pipeline PipelineInterface,
	repo database.PublicationRepositoryInterface, version string) *Handler {
	return &Handler{
		parser:   parser,
		pipeline: pipeline,
		repo:     repo,
		version:  version,
	}
}

func (h *Handler) Convert(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		slog.Error("Failed to read request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	raw, err := h.parser.Run(body)
	if err != nil {
		var parseErr *bibtex.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": parseErr.Msg, "line": parseErr.Line})
			return
		}
		slog.Error("BibTeX parsing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Parsing failed"})
		return
	}

	entries := h.pipeline.Run(raw)

	if h.repo != nil {
		if err := h.repo.ReplaceAll(entries); err != nil {
			slog.Error("Database error", "operation", "replace_publications", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
	}

	var buf bytes.Buffer
	if err := normalize.Render(&buf, entries, 4); err != nil {
		slog.Error("JSON rendering failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rendering failed"})
		return
	}

	slog.Info("Bibliography converted", "entries", len(entries), "bytes", len(body))

	c.Header("X-Entry-Count", strconv.Itoa(len(entries)))
	c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if h.repo != nil {
		if count, err := h.repo.Count(); err == nil {
			health["publications"] = count
		} else {
			slog.Error("Database error", "operation", "count_publications", "error", err)
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIListPublications(c *gin.Context) {
	publications, err := h.repo.List()
	if err != nil {
		slog.Error("Database error", "operation", "list_publications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := make([]map[string]interface{}, 0, len(publications))
	for _, p := range publications {
		items = append(items, map[string]interface{}{
			"key":        p.CiteKey,
			"position":   p.Position,
			"created_at": p.CreatedAt.Format(time.RFC3339),
			"document":   p.Document,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"publications": items,
		"total":        len(items),
	})
}

func (h *Handler) APIGetPublication(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing publication key parameter"})
		return
	}

	publication, err := h.repo.Get(key)
	if err != nil {
		slog.Error("Database error", "operation", "get_publication", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if publication == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
		return
	}

	c.Header("X-Publication-Position", strconv.Itoa(publication.Position))
	c.Data(http.StatusOK, "application/json; charset=utf-8", publication.Document)
}
