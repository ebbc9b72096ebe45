package controllers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

type QRCodeController struct {
	appURL string
}

func NewQRCodeController(appURL string) *QRCodeController {
	return &QRCodeController{appURL: appURL}
}

// GenerateQRCode handles GET /dashboard/:code/qr.png
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	shortCode := c.Param("code")
	if shortCode == "" {
		c.String(http.StatusBadRequest, "Short code is required")
		return
	}

	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < minQRSize || parsed > maxQRSize {
			c.String(http.StatusBadRequest, "Size must be a number between 128 and 1024")
			return
		}
		size = parsed
	}

	png, err := qrcode.Encode(qc.ShortURL(shortCode), qrcode.Medium, size)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	c.Header("Content-Disposition", "inline; filename="+url.PathEscape(shortCode)+".png")
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}

// ShortURL is the public address the QR code points at
func (qc *QRCodeController) ShortURL(shortCode string) string {
	return qc.appURL + "/" + url.PathEscape(shortCode)
}
