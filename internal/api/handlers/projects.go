package handlers

import (
	"errors"
	"net/http"

	"github.com/Ayash-Bera/goai/backend/internal/projects"
	"github.com/Ayash-Bera/goai/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const exportFilename = "goai-projects.json"

type ProjectHandler struct {
	repo   *projects.Repository
	logger *logrus.Logger
}

func NewProjectHandler(repo *projects.Repository, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{
		repo:   repo,
		logger: logger,
	}
}

func (h *ProjectHandler) HandleList(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list projects")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Projects retrieved", list)
}

func (h *ProjectHandler) HandleCreate(c *gin.Context) {
	var req projects.NewProject
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid project format", err)
		return
	}

	id, err := h.repo.Save(c.Request.Context(), req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to save project")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to save project", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Project saved", gin.H{"id": id})
}

func (h *ProjectHandler) HandleGet(c *gin.Context) {
	project, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "Failed to get project", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project retrieved", project)
}

func (h *ProjectHandler) HandleUpdate(c *gin.Context) {
	var req projects.Update
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid update format", err)
		return
	}

	project, err := h.repo.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, "Failed to update project", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project updated", project)
}

func (h *ProjectHandler) HandleDelete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "Failed to delete project", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project deleted", nil)
}

// HandleExport downloads every project as one JSON file.
func (h *ProjectHandler) HandleExport(c *gin.Context) {
	data, err := h.repo.Export(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to export projects")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to export projects", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+exportFilename)
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(data))
}

// HandleImport takes an exported file as the raw request body.
func (h *ProjectHandler) HandleImport(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read import body", err)
		return
	}

	result, err := h.repo.Import(c.Request.Context(), body)
	if err != nil {
		h.logger.WithError(err).Error("Failed to import projects")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to import projects", err)
		return
	}

	code := http.StatusOK
	if !result.Success {
		code = http.StatusBadRequest
	}
	c.JSON(code, result)
}

func (h *ProjectHandler) writeError(c *gin.Context, message string, err error) {
	if errors.Is(err, projects.ErrProjectNotFound) {
		utils.ErrorResponse(c, http.StatusNotFound, "Project not found", err)
		return
	}
	h.logger.WithError(err).WithField("project_id", c.Param("id")).Error(message)
	utils.ErrorResponse(c, http.StatusInternalServerError, message, err)
}
