package transport

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/gin-gonic/gin"
)

const exportFilename = "filtered_data.csv"

func (h *DatasetHandler) GetOptions(c *gin.Context) {
	opts, err := h.service.Options()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (h *DatasetHandler) GetRows(c *gin.Context) {
	p, err := h.filterParams(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	preview := true
	if raw := c.Query("preview"); raw != "" {
		preview, err = strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, fmt.Errorf("%w: preview must be true or false", entity.ErrInvalidInput))
			return
		}
	}

	resp, err := h.service.Rows(c.Request.Context(), p, preview)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DatasetHandler) GetCharts(c *gin.Context) {
	p, err := h.filterParams(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp, err := h.service.Charts(c.Request.Context(), p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetChartImage serves /charts/<name>.png
func (h *DatasetHandler) GetChartImage(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("file"), ".png")
	if !ok {
		abortWithError(c, fmt.Errorf("%w: %s", entity.ErrUnknownChart, c.Param("file")))
		return
	}

	p, err := h.filterParams(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	data, err := h.service.ChartPNG(c.Request.Context(), name, p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", data)
}

func (h *DatasetHandler) Export(c *gin.Context) {
	p, err := h.filterParams(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), p, &buf); err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *DatasetHandler) GetSummary(c *gin.Context) {
	p, err := h.filterParams(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// filterParams reads sex, age_min and age_max. Missing ages fall back to
// the dataset defaults.
func (h *DatasetHandler) filterParams(c *gin.Context) (entity.FilterParams, error) {
	p := entity.FilterParams{Sex: c.DefaultQuery("sex", entity.SexAll)}

	rawMin, hasMin := c.GetQuery("age_min")
	rawMax, hasMax := c.GetQuery("age_max")
	if !hasMin || !hasMax {
		opts, err := h.service.Options()
		if err != nil {
			return p, err
		}
		p.AgeMin, p.AgeMax = opts.DefaultAgeMin, opts.DefaultAgeMax
	}

	var err error
	if hasMin {
		if p.AgeMin, err = parseAge("age_min", rawMin); err != nil {
			return p, err
		}
	}
	if hasMax {
		if p.AgeMax, err = parseAge("age_max", rawMax); err != nil {
			return p, err
		}
	}
	return p, nil
}

func parseAge(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %s must be a number", entity.ErrInvalidInput, name)
	}
	return v, nil
}
