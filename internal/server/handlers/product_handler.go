package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/epd-dashboard/internal/config"
	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/internal/export"
	"github.com/mamadbah2/epd-dashboard/internal/loader"
	"github.com/mamadbah2/epd-dashboard/internal/server/views"
	"github.com/mamadbah2/epd-dashboard/internal/service/resources"
	"github.com/mamadbah2/epd-dashboard/internal/session"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// ProductHandler serves the material catalog and the per-material pages.
type ProductHandler struct {
	pages
}

// NewProductHandler constructs the material pages handler.
func NewProductHandler(svc *resources.Set, cfg config.SessionConfig, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{pages: newPages(svc, cfg, logger)}
}

// List shows the catalog. The import and edit query parameters reopen the
// matching form after a failed submission.
func (h *ProductHandler) List(c *gin.Context) {
	flash, n := h.notices(c)
	catalog := loader.NewProductCatalog(h.svc.Products, n)
	snap := catalog.Load(c.Request.Context(), loader.None{})

	_, importOpen := c.GetQuery("import")
	h.render(c, http.StatusOK, views.PageProducts, views.Page{
		Title:    "Materials",
		Subtitle: "Materials imported from the system of record.",
		Content: views.ProductsView{
			Products:   snap.Data,
			ImportOpen: importOpen,
			ImportCode: c.Query("import"),
			EditID:     c.Query("edit"),
		},
	}, flash, n)
}

// Import creates a material from its business code.
func (h *ProductHandler) Import(c *gin.Context) {
	flash, n := h.notices(c)
	code := strings.TrimSpace(c.PostForm("productCode"))
	if code == "" {
		n.Error("Error importing product", "The product code is required.")
		h.redirect(c, "/products?import=", flash)
		return
	}

	catalog := loader.NewProductCatalog(h.svc.Products, n)
	if _, err := catalog.Import(c.Request.Context(), code); err != nil {
		h.logger.Warn("product import failed", zap.String("code", code), zap.Error(err))
		h.redirect(c, "/products?import="+url.QueryEscape(code), flash)
		return
	}
	h.redirect(c, "/products", flash)
}

// Update changes a material's description.
func (h *ProductHandler) Update(c *gin.Context) {
	flash, n := h.notices(c)
	id := c.Param("productId")
	description := strings.TrimSpace(c.PostForm("productDescription"))

	catalog := loader.NewProductCatalog(h.svc.Products, n)
	if _, err := catalog.Update(c.Request.Context(), id, models.UpdateProductInput{ProductDescription: &description}); err != nil {
		h.logger.Warn("product update failed", zap.String("id", id), zap.Error(err))
		h.redirect(c, "/products?edit="+url.QueryEscape(id), flash)
		return
	}
	h.redirect(c, "/products", flash)
}

// Delete removes a material.
func (h *ProductHandler) Delete(c *gin.Context) {
	flash, n := h.notices(c)
	id := c.Param("productId")

	catalog := loader.NewProductCatalog(h.svc.Products, n)
	if err := catalog.Delete(c.Request.Context(), id); err != nil {
		h.logger.Warn("product delete failed", zap.String("id", id), zap.Error(err))
	}
	h.redirect(c, "/products", flash)
}

// Detail shows one material and the component codes used under it.
func (h *ProductHandler) Detail(c *gin.Context) {
	flash, n := h.notices(c)
	ctx := c.Request.Context()

	product := loader.Product(h.svc.Products.Get, n).Load(ctx, c.Param("productId"))
	var code string
	if product.Data != nil {
		code = product.Data.ProductCode
	}
	codes := loader.ComponentCodes(h.svc.Products.DistinctComponentCodes, n).Load(ctx, code)

	page := views.Page{Title: "Material not found"}
	if product.Data != nil {
		page.Title = product.Data.ProductCode
		page.Subtitle = product.Data.Description()
	}
	page.Content = views.ProductView{Product: product.Data, ComponentCodes: codes.Data}
	h.render(c, statusFor(product.Err), views.PageProduct, page, flash, n)
}

// Components shows the material's bill of materials as a tree.
func (h *ProductHandler) Components(c *gin.Context) {
	flash, n := h.notices(c)
	ctx := c.Request.Context()
	id := c.Param("productId")

	components := loader.Components(h.svc.Components.ListByProduct, n).Load(ctx, id)
	rows := models.Flatten(models.BuildComponentTree(components.Data))

	h.render(c, http.StatusOK, views.PageComponents, views.Page{
		Title:    "Material Components",
		Subtitle: "Bill of materials for the material with ID: " + id,
		Content:  views.ComponentsView{ProductID: id, Rows: rows},
	}, flash, n)
}

// Routings shows the material's routing steps and the upload form.
func (h *ProductHandler) Routings(c *gin.Context) {
	flash, n := h.notices(c)
	id := c.Param("productId")

	routings := loader.Routings(h.svc.Products.Routings, n).Load(c.Request.Context(), id)

	h.render(c, http.StatusOK, views.PageRoutings, views.Page{
		Title:    "Material Routings",
		Subtitle: "List of all routing steps for the material with ID: " + id,
		Content:  views.RoutingsView{ProductID: id, Routings: routings.Data},
	}, flash, n)
}

// ImportRoutings replaces the material's routings from an uploaded file.
func (h *ProductHandler) ImportRoutings(c *gin.Context) {
	flash, n := h.notices(c)
	ctx := c.Request.Context()
	id := c.Param("productId")
	back := "/products/" + url.PathEscape(id) + "/routings"

	header, err := c.FormFile("file")
	if err != nil {
		n.Error("Error importing routings", "A routing file is required.")
		h.redirect(c, back, flash)
		return
	}
	file, err := header.Open()
	if err != nil {
		h.logger.Error("failed opening uploaded routing file", zap.Error(err))
		n.Error("Error importing routings", "The uploaded file could not be read.")
		h.redirect(c, back, flash)
		return
	}
	defer file.Close()

	product, err := h.svc.Products.Get(ctx, id)
	if err != nil || product == nil {
		n.Error("Error importing routings", epdapi.Message(err))
		h.redirect(c, back, flash)
		return
	}

	result, err := h.svc.Routings.ImportFile(ctx, product.ProductCode, header.Filename, file)
	if err != nil {
		h.logger.Warn("routing import failed", zap.String("code", product.ProductCode), zap.Error(err))
		n.Error("Error importing routings", epdapi.Message(err))
		h.redirect(c, back, flash)
		return
	}

	message := "The routing file was imported."
	if result != nil && result.Message != "" {
		message = result.Message
	}
	n.Success("Routings imported", message)
	h.redirect(c, back, flash)
}

// QualityHours shows the material's quality hours report with its totals.
func (h *ProductHandler) QualityHours(c *gin.Context) {
	flash, n := h.notices(c)
	id := c.Param("productId")

	report := loader.QualityHours(h.svc.Products.QualityHoursReport, n).Load(c.Request.Context(), id)

	page := views.Page{Title: "Quality Hours Report"}
	if len(report.Data) > 0 {
		first := report.Data[0]
		page.Subtitle = first.ProductCode + " · " + first.ProductDescription
	}
	page.Content = views.QualityHoursView{
		ProductID: id,
		Rows:      report.Data,
		Totals:    models.ComputeQualityTotals(report.Data),
	}
	h.render(c, http.StatusOK, views.PageQualityHours, page, flash, n)
}

// ExportQualityHours downloads the quality hours report as a spreadsheet.
func (h *ProductHandler) ExportQualityHours(c *gin.Context) {
	flash, n := h.notices(c)
	id := c.Param("productId")

	rows, err := h.svc.Products.QualityHoursReport(c.Request.Context(), id)
	if err != nil {
		n.Error("Error exporting quality hours report", epdapi.Message(err))
		h.redirect(c, "/products/"+url.PathEscape(id)+"/quality-hours-report", flash)
		return
	}

	code := id
	if len(rows) > 0 && rows[0].ProductCode != "" {
		code = rows[0].ProductCode
	}

	workbook, err := export.QualityHours(rows)
	if err != nil {
		h.logger.Error("failed building quality hours workbook", zap.Error(err))
		n.Error("Error exporting quality hours report", "The spreadsheet could not be generated.")
		h.redirect(c, "/products/"+url.PathEscape(id)+"/quality-hours-report", flash)
		return
	}
	defer workbook.Close()

	session.RelayCookies(c)
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", "attachment; filename=\""+export.QualityHoursFilename(code)+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Error("failed writing quality hours workbook", zap.Error(err))
	}
}

func statusFor(err error) int {
	if epdapi.IsNotFound(err) {
		return http.StatusNotFound
	}
	return http.StatusOK
}
