package handlers

import (
	"net/http"

	"wayfarer/models"
	"wayfarer/store"

	"github.com/gin-gonic/gin"
)

func AddItem(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := s.AddItem(c.Request.Context(), c.Param("id"), c.Param("dayId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func UpdateItem(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.ItemPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			bindError(c, err)
			return
		}

		item, err := s.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("dayId"), c.Param("itemId"), patch)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func DeleteItem(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.DeleteItem(c.Request.Context(), c.Param("id"), c.Param("dayId"), c.Param("itemId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
	}
}
