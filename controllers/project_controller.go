package controllers

import (
	"net/http"

	"fieldops-backend/app"
	"fieldops-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectController struct{ *Srv }

func NewProjectController(s *Srv) *ProjectController { return &ProjectController{Srv: s} }

// POST /api/projects (admin)
func (pc *ProjectController) Create(c *gin.Context) {
	var in struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	p := &models.Project{ID: uuid.NewString(), Name: in.Name, IsActive: true}
	if err := pc.Repo.CreateProject(c.Request.Context(), p); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/projects
func (pc *ProjectController) List(c *gin.Context) {
	ps, err := pc.Repo.ListProjects(c.Request.Context())
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": ps})
}
