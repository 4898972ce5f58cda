package handlers

import (
	"wayfarer/gateway"
	"wayfarer/maps"
	"wayfarer/store"
	"wayfarer/workspace"

	"github.com/gin-gonic/gin"
)

// Deps are the services the HTTP API is built on.
type Deps struct {
	Store      *store.Store
	Gateway    *gateway.Gateway
	Workspaces *workspace.Registry
	Locator    *maps.Locator

	// AI runs in front of every route that calls the assistant.
	AI []gin.HandlerFunc
}

// Register mounts the API on r.
func Register(r gin.IRouter, d Deps) {
	ai := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, d.AI...), h)
	}

	projects := r.Group("/projects")
	projects.GET("", ListProjects(d.Store))
	projects.POST("", SaveProject(d.Store))
	projects.GET("/:id", GetProject(d.Store))
	projects.PUT("/:id", UpdateProject(d.Store))
	projects.PATCH("/:id", PatchProject(d.Store))
	projects.DELETE("/:id", DeleteProject(d.Store))
	projects.POST("/:id/banner", ai(GenerateBanner(d.Store, d.Gateway))...)
	projects.GET("/:id/weather", ai(GetWeather(d.Store, d.Gateway))...)
	projects.GET("/:id/calendar.ics", ExportCalendar(d.Store))
	projects.POST("/:id/days/:dayId/items", AddItem(d.Store))
	projects.PATCH("/:id/days/:dayId/items/:itemId", UpdateItem(d.Store))
	projects.DELETE("/:id/days/:dayId/items/:itemId", DeleteItem(d.Store))
	projects.GET("/:id/chats", ListChats(d.Store))
	projects.GET("/:id/chats/:chatId", GetChat(d.Store))
	projects.DELETE("/:id/chats/:chatId", DeleteChat(d.Store))

	workspaces := r.Group("/workspaces")
	workspaces.POST("", CreateWorkspace(d.Workspaces))
	workspaces.GET("/:wid", GetWorkspace(d.Workspaces))
	workspaces.DELETE("/:wid", CloseWorkspace(d.Workspaces))
	workspaces.POST("/:wid/open", OpenProject(d.Workspaces))
	workspaces.POST("/:wid/back", Back(d.Workspaces))
	workspaces.PUT("/:wid/tab", SetTab(d.Workspaces))
	workspaces.PUT("/:wid/day", SetActiveDay(d.Workspaces))
	workspaces.POST("/:wid/map", ShowOnMap(d.Workspaces))
	workspaces.PUT("/:wid/chat", SelectChat(d.Workspaces))
	workspaces.PUT("/:wid/model", SelectModel(d.Workspaces))
	workspaces.POST("/:wid/messages", ai(SendMessage(d.Workspaces))...)
	workspaces.DELETE("/:wid/chats/:chatId", DeleteWorkspaceChat(d.Workspaces))

	translate := r.Group("/translate")
	translate.POST("/text", ai(TranslateText(d.Gateway))...)
	translate.POST("/vision", ai(TranslateVision(d.Gateway))...)
	translate.POST("/audio", ai(TranslateAudio(d.Gateway))...)

	r.POST("/photos/edit", ai(EditPhoto(d.Gateway))...)

	r.GET("/currency/currencies", ListCurrencies)
	r.GET("/currency/convert", ConvertCurrency)

	r.GET("/maps", MapView(d.Locator))
	r.GET("/maps/qr", MapQRCode(d.Locator))
}
