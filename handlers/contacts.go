package handlers

import (
	"errors"
	"net/http"

	"agendador/services/directory"
	"agendador/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContactHandler exposes the contact directory over REST, for operating the
// directory outside the chat.
type ContactHandler struct {
	Directory directory.DirectoryService
}

func NewContactHandler(dir directory.DirectoryService) *ContactHandler {
	return &ContactHandler{Directory: dir}
}

type upsertContactRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// ListContactsHandler returns all directory entries.
func (h *ContactHandler) ListContactsHandler(c *gin.Context) {
	contacts, err := h.Directory.List(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list contacts", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list contacts", err.Error())
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// GetContactHandler returns one contact by name (case-insensitive).
func (h *ContactHandler) GetContactHandler(c *gin.Context) {
	name := c.Param("name")
	contact, err := h.Directory.Lookup(c.Request.Context(), name)
	if errors.Is(err, directory.ErrContactNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Contact not found", name)
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to get contact", zap.String("name", name), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to get contact", err.Error())
		return
	}
	c.JSON(http.StatusOK, contact)
}

// UpsertContactHandler inserts a contact or overwrites the email of an
// existing name.
func (h *ContactHandler) UpsertContactHandler(c *gin.Context) {
	var req upsertContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid contact payload", err.Error())
		return
	}

	contact, err := h.Directory.Upsert(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		var dup *directory.DuplicateContactError
		if errors.As(err, &dup) {
			utils.JSONError(c, http.StatusConflict, "Contact conflicts with an existing entry", dup.Error())
			return
		}
		getLogger(c).Error("Failed to upsert contact", zap.String("name", req.Name), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save contact", err.Error())
		return
	}
	c.JSON(http.StatusOK, contact)
}

// DeleteContactHandler removes a contact by name.
func (h *ContactHandler) DeleteContactHandler(c *gin.Context) {
	name := c.Param("name")
	err := h.Directory.Remove(c.Request.Context(), name)
	if errors.Is(err, directory.ErrContactNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Contact not found", name)
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to delete contact", zap.String("name", name), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete contact", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name})
}
