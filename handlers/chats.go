package handlers

import (
	"net/http"

	"wayfarer/models"
	"wayfarer/store"

	"github.com/gin-gonic/gin"
)

func ListChats(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		chats, err := s.Chats(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ChatsResponse{Chats: chats, Total: len(chats)})
	}
}

func GetChat(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		chat, err := s.Chat(c.Param("id"), c.Param("chatId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, chat)
	}
}

func DeleteChat(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.DeleteChat(c.Request.Context(), c.Param("id"), c.Param("chatId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "chat deleted"})
	}
}
