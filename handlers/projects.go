package handlers

import (
	"log"
	"net/http"
	"time"

	"wayfarer/calendar"
	"wayfarer/gateway"
	"wayfarer/models"
	"wayfarer/store"

	"github.com/gin-gonic/gin"
)

func ListProjects(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects := s.List()
		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// SaveProject creates a project, or updates it when the body carries an id.
func SaveProject(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SaveProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		saveProject(c, s, req)
	}
}

// UpdateProject edits the project named in the path.
func UpdateProject(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SaveProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		req.ID = c.Param("id")
		saveProject(c, s, req)
	}
}

func saveProject(c *gin.Context, s *store.Store, req models.SaveProjectRequest) {
	project, err := s.CreateOrUpdate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
		log.Printf("Project created: %s", project.ID)
	}
	c.JSON(status, project)
}

func GetProject(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, err := s.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

func PatchProject(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.ProjectPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			bindError(c, err)
			return
		}

		project, err := s.Patch(c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

func DeleteProject(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
	}
}

// GenerateBanner asks the assistant for a banner of the project's destination
// and stores it. The project is returned unchanged when no image came back.
func GenerateBanner(s *store.Store, gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		project, err := s.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		banner, ok := gw.GenerateBanner(ctx, project.Title)
		if !ok {
			c.JSON(http.StatusOK, models.BannerResponse{Project: project})
			return
		}

		project, err = s.Patch(ctx, project.ID, models.ProjectPatch{BannerURL: &banner})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.BannerResponse{BannerURL: &banner, Project: project})
	}
}

func GetWeather(s *store.Store, gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, err := s.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		weather, _ := gw.FetchWeather(c.Request.Context(), project.Title)
		c.JSON(http.StatusOK, models.WeatherResponse{Weather: weather})
	}
}

func ExportCalendar(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, err := s.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="itinerary.ics"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar.Export(project, time.Now())))
	}
}
