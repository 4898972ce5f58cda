package handlers

import (
	"net/http"

	"wayfarer/media"
	"wayfarer/models"
	"wayfarer/workspace"

	"github.com/gin-gonic/gin"
)

// withWorkspace resolves the :wid path parameter before calling fn.
func withWorkspace(reg *workspace.Registry, fn func(c *gin.Context, w *workspace.Workspace)) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := reg.Get(c.Param("wid"))
		if err != nil {
			respondError(c, err)
			return
		}
		fn(c, w)
	}
}

func stateOrError(c *gin.Context, state models.WorkspaceState, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func CreateWorkspace(reg *workspace.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := reg.Create()
		c.JSON(http.StatusCreated, w.State())
	}
}

func GetWorkspace(reg *workspace.Registry) gin.HandlerFunc {
	return withWorkspace(reg, func(c *gin.Context, w *workspace.Workspace) {
		c.JSON(http.StatusOK, w.State())
	})
}

// CloseWorkspace drops the workspace; its client is gone.
func CloseWorkspace(reg *workspace.Registry) gin.HandlerFunc {
	return withWorkspace(reg, func(c *gin.Context, w *workspace.Workspace) {
		reg.Delete(w.ID())
		c.JSON(http.StatusOK, gin.H{"message": "workspace closed"})
	})
}

func OpenProject(reg *workspace.Registry) gin.HandlerFunc {
	return withWorkspace(reg, func(c *gin.Context, w *workspace.Workspace) {
		var req models.OpenProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		state, err := w.Open(req.ProjectID)
		stateOrError(c, state, err)
	})
}

func Back(reg *workspace.Registry) gin.HandlerFunc {
	return withWorkspace(reg, func(c *gin.Context, w *workspace.Workspace) {
		c.JSON(http.StatusOK, w.Back())
	})
}

func SetTab(reg *workspace.Registry) gin.HandlerFunc {
	return withWorkspace(reg, func(c *gin.Context, w *workspace.Workspace) {
		var req models.SetTabRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		state, err := w.SetTab(req.Tab)
		stateOrError(c, state, err)
	})
}

func SetActiveDay(reg *workspace.Registry) gin.HandlerFunc {
	return withWorkspace(reg, func(c *gin.Context, w *workspace.Workspace) {
		var req models.SetDayRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		state, err := w.SetActiveDay(req.Index)
		stateOrError(c, state, err)
	})
}

func ShowOnMap(reg *workspace.Registry) gin.HandlerFunc {
	return withWorkspace(reg, func(c *gin.Context, w *workspace.Workspace) {
		var req models.ShowOnMapRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		state, err := w.ShowOnMap(req.Location)
		stateOrError(c, state, err)
	})
}

func SelectChat(reg *workspace.Registry) gin.HandlerFunc {
	return withWorkspace(reg, func(c *gin.Context, w *workspace.Workspace) {
		var req models.SelectChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		state, err := w.SelectChat(req.ChatID)
		stateOrError(c, state, err)
	})
}

func SelectModel(reg *workspace.Registry) gin.HandlerFunc {
	return withWorkspace(reg, func(c *gin.Context, w *workspace.Workspace) {
		var req models.SelectModelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		state, err := w.SelectModel(req.Model)
		stateOrError(c, state, err)
	})
}

// SendMessage runs one assistant exchange and answers when the reply is in.
func SendMessage(reg *workspace.Registry) gin.HandlerFunc {
	return withWorkspace(reg, func(c *gin.Context, w *workspace.Workspace) {
		var req models.SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		if req.Image != nil {
			image, err := media.NormalizeImage(req.Image.Data)
			if err != nil {
				respondError(c, err)
				return
			}
			req.Image = &image
		}

		result, err := w.Composer().Send(c.Request.Context(), req.Text, req.Image)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})
}

func DeleteWorkspaceChat(reg *workspace.Registry) gin.HandlerFunc {
	return withWorkspace(reg, func(c *gin.Context, w *workspace.Workspace) {
		state, err := w.DeleteChat(c.Request.Context(), c.Param("chatId"))
		stateOrError(c, state, err)
	})
}
