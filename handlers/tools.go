package handlers

import (
	"net/http"
	"strconv"

	"wayfarer/currency"
	"wayfarer/gateway"
	"wayfarer/maps"
	"wayfarer/media"
	"wayfarer/models"

	"github.com/gin-gonic/gin"
)

const defaultAudioMimeType = "audio/webm"

func TranslateText(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TranslateTextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		out := gw.TranslateText(c.Request.Context(), req.Text, req.From, req.To)
		c.JSON(http.StatusOK, models.TranslationResponse{Translation: out})
	}
}

// TranslateVision reads the text in a camera frame and translates it.
func TranslateVision(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TranslateMediaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		image, err := media.NormalizeImage(req.Data)
		if err != nil {
			respondError(c, err)
			return
		}

		out := gw.TranslateVision(c.Request.Context(), image, req.From, req.To)
		c.JSON(http.StatusOK, models.TranslationResponse{Translation: out})
	}
}

func TranslateAudio(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TranslateMediaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		mimeType, data := gateway.SplitDataURL(req.Data)
		if req.MimeType != "" {
			mimeType = req.MimeType
		}
		if mimeType == "" {
			mimeType = defaultAudioMimeType
		}

		audio := models.InlineData{MimeType: mimeType, Data: data}
		out := gw.TranslateAudio(c.Request.Context(), audio, req.From, req.To)
		c.JSON(http.StatusOK, models.TranslationResponse{Translation: out})
	}
}

func EditPhoto(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.EditPhotoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		image, err := media.NormalizeImage(req.Image)
		if err != nil {
			respondError(c, err)
			return
		}

		edited, ok := gw.EditPhoto(c.Request.Context(), image, req.Instruction)
		if !ok {
			c.JSON(http.StatusOK, models.ImageResponse{})
			return
		}
		c.JSON(http.StatusOK, models.ImageResponse{Image: &edited})
	}
}

func ListCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currencies": currency.Currencies()})
}

func ConvertCurrency(c *gin.Context) {
	var q models.ConvertQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	conversion, err := currency.Convert(q.From, q.To, q.Amount)
	if err == nil && q.Swap {
		conversion, err = currency.Swap(conversion)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversion)
}

func MapView(locator *maps.Locator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q models.MapQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			bindError(c, err)
			return
		}

		view, err := locator.View(q.Q, q.Lat, q.Lng)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// MapQRCode renders the external map link as a PNG so it can be opened on a phone.
func MapQRCode(locator *maps.Locator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q models.MapQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			bindError(c, err)
			return
		}

		view, err := locator.View(q.Q, q.Lat, q.Lng)
		if err != nil {
			respondError(c, err)
			return
		}

		size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))
		png, err := maps.QRCode(view.ExternalURL, size)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
