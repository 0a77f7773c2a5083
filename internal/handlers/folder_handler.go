package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"vocabdeck/internal/deck"
	"vocabdeck/internal/service"
)

// FolderHandler handles folder listing and management HTTP requests
type FolderHandler struct {
	deckService *service.DeckService
	templates   *template.Template
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(deckService *service.DeckService, templates *template.Template) *FolderHandler {
	return &FolderHandler{
		deckService: deckService,
		templates:   templates,
	}
}

// Home shows the folder list
func (h *FolderHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderFolderList(w, "")
}

// CreateFolder creates a new folder from the form on the home page
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	description := r.FormValue("description")

	if _, err := h.deckService.CreateFolder(name, description); err != nil {
		if errors.Is(err, deck.ErrEmptyName) {
			h.renderFolderList(w, "Folder name cannot be empty")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create folder", "Error creating folder", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteFolder deletes a folder and all of its cards
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.deckService.DeleteFolder(id); err != nil {
		if errors.Is(err, deck.ErrProtectedFolder) {
			h.renderFolderList(w, "The default folder cannot be deleted")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete folder", "Error deleting folder", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *FolderHandler) renderFolderList(w http.ResponseWriter, errMsg string) {
	folders := h.deckService.Folders()

	summaries := make([]FolderSummary, 0, len(folders))
	for _, f := range folders {
		summaries = append(summaries, FolderSummary{
			Folder:    f,
			CardCount: h.deckService.CardCount(f.ID),
		})
	}

	data := FolderListViewData{
		Title:   "Folders",
		Folders: summaries,
		Error:   errMsg,
	}

	if err := h.templates.ExecuteTemplate(w, "folders.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render page", "Error rendering folder list", err)
	}
}
