package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"vocabdeck/internal/deck"
	"vocabdeck/internal/models"
	"vocabdeck/internal/service"
)

// maxImportUpload caps uploaded import files at 1MB
const maxImportUpload = 1 << 20

// DeckHandler handles card editing HTTP requests within a folder
type DeckHandler struct {
	deckService *service.DeckService
	templates   *template.Template
}

// NewDeckHandler creates a new deck handler
func NewDeckHandler(deckService *service.DeckService, templates *template.Template) *DeckHandler {
	return &DeckHandler{
		deckService: deckService,
		templates:   templates,
	}
}

// ShowDeck shows the card list for a folder, optionally filtered by a search query
func (h *DeckHandler) ShowDeck(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")

	folder, ok := h.deckService.FolderByID(folderID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query().Get("q")
	h.renderDeck(w, folder, query, "", nil)
}

// AddCard adds a single card to a folder
func (h *DeckHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")

	folder, ok := h.deckService.FolderByID(folderID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	term := r.FormValue("term")
	definition := r.FormValue("definition")

	if _, err := h.deckService.AddCard(term, definition, folderID); err != nil {
		switch {
		case errors.Is(err, deck.ErrEmptyField):
			h.renderDeck(w, folder, "", "Both term and definition are required", nil)
		case errors.Is(err, deck.ErrDuplicateTerm):
			h.renderDeck(w, folder, "", "That term is already in this folder", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to add card", "Error adding card", err)
		}
		return
	}

	http.Redirect(w, r, "/folders/"+folderID+"/edit", http.StatusSeeOther)
}

// DeleteCard removes a card from a folder
func (h *DeckHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("folderId")
	cardID := r.PathValue("cardId")

	h.deckService.DeleteCard(cardID, folderID)

	http.Redirect(w, r, "/folders/"+folderID+"/edit", http.StatusSeeOther)
}

// ClearFolder removes every card from a folder
func (h *DeckHandler) ClearFolder(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")

	if _, ok := h.deckService.FolderByID(folderID); !ok {
		http.NotFound(w, r)
		return
	}

	h.deckService.ClearFolder(folderID)

	http.Redirect(w, r, "/folders/"+folderID+"/edit", http.StatusSeeOther)
}

// Import bulk-imports cards from pasted text, one "term | definition" line each
func (h *DeckHandler) Import(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")

	folder, ok := h.deckService.FolderByID(folderID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	result, err := h.deckService.Import(r.FormValue("text"), folderID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to import cards", "Error importing cards", err)
		return
	}

	h.renderDeck(w, folder, "", "", &result)
}

// ImportFile bulk-imports cards from an uploaded text file
func (h *DeckHandler) ImportFile(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")

	folder, ok := h.deckService.FolderByID(folderID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseMultipartForm(maxImportUpload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid upload", "Error parsing import upload", err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "No file uploaded", "Error reading import upload", err)
		return
	}
	defer file.Close()

	text, err := io.ReadAll(io.LimitReader(file, maxImportUpload))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to read file", "Error reading import file", err)
		return
	}

	result, err := h.deckService.Import(string(text), folderID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to import cards", "Error importing cards", err)
		return
	}

	h.renderDeck(w, folder, "", "", &result)
}

// Export downloads the folder's cards as a plain text file
func (h *DeckHandler) Export(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")

	folder, ok := h.deckService.FolderByID(folderID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	text, err := h.deckService.Export(folderID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export cards", "Error exporting cards", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", folder.Name+".txt"))
	fmt.Fprint(w, text)
}

func (h *DeckHandler) renderDeck(w http.ResponseWriter, folder models.Folder, query, errMsg string, result *models.ImportResult) {
	data := EditViewData{
		Title:        folder.Name,
		Folder:       folder,
		Cards:        h.deckService.Cards(folder.ID, query),
		Query:        query,
		Error:        errMsg,
		ImportResult: result,
	}

	if err := h.templates.ExecuteTemplate(w, "edit.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render page", "Error rendering deck editor", err)
	}
}
