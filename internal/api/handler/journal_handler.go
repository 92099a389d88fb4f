package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/api/metrics"
	"github.com/daybook/journal-api/internal/core/domain"
	"github.com/daybook/journal-api/internal/core/ports"
)

// JournalHandler handles post/todo pages and their mutations.
type JournalHandler struct {
	journal ports.JournalService
	profile ports.ProfileService
}

func NewJournalHandler(journal ports.JournalService, profile ports.ProfileService) *JournalHandler {
	return &JournalHandler{journal: journal, profile: profile}
}

// Main renders the landing page: all posts, all todos, and the
// authenticated user's profile for the header.
func (h *JournalHandler) Main(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.journal.ListDay(c.Request().Context(), "")
	if err != nil {
		return err
	}

	user, err := h.profile.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "main.html", echo.Map{
		"Posts": view.Posts,
		"Todos": view.Todos,
		"User":  user,
		"Date":  "",
	})
}

// ByDate renders the entries of one calendar day.
func (h *JournalHandler) ByDate(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	view, err := h.journal.ListDay(c.Request().Context(), date)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "main.html", echo.Map{
		"Posts": view.Posts,
		"Todos": view.Todos,
		"Date":  date,
	})
}

// WritePage renders the post composer.
func (h *JournalHandler) WritePage(c echo.Context) error {
	return c.Render(http.StatusOK, "write.html", nil)
}

// TodoWritePage renders the todo composer.
func (h *JournalHandler) TodoWritePage(c echo.Context) error {
	return c.Render(http.StatusOK, "todowrite.html", nil)
}

// AddPost stores a new journal post and returns to the main page.
func (h *JournalHandler) AddPost(c echo.Context) error {
	var req addEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if _, err := h.journal.AddPost(c.Request().Context(), ports.AddEntryInput{
		Date: req.SelectedDate,
		Text: req.Content,
	}); err != nil {
		return err
	}

	metrics.EntriesCreatedTotal.WithLabelValues(string(domain.KindPost)).Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}

// AddTodo stores a new todo item and returns to the main page.
func (h *JournalHandler) AddTodo(c echo.Context) error {
	var req addEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if _, err := h.journal.AddTodo(c.Request().Context(), ports.AddEntryInput{
		Date: req.SelectedDate,
		Text: req.Content,
	}); err != nil {
		return err
	}

	metrics.EntriesCreatedTotal.WithLabelValues(string(domain.KindTodo)).Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditPage resolves the identifier and renders the editor matching the
// owning kind; an unresolved id is a 404.
func (h *JournalHandler) EditPage(c echo.Context) error {
	resolved, err := h.journal.Resolve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	switch resolved.Kind {
	case domain.KindTodo:
		return c.Render(http.StatusOK, "todoedit.html", echo.Map{"Todo": resolved.Todo})
	default:
		return c.Render(http.StatusOK, "edit.html", echo.Map{"Post": resolved.Post})
	}
}

// Edit updates the text of whichever entry owns the submitted id.
func (h *JournalHandler) Edit(c echo.Context) error {
	var req editEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.journal.EditEntry(c.Request().Context(), req.ID, req.Content); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// Check flips the completion flag of the owning entry and echoes the
// new value.
//
// @Summary      Toggle an entry's completion flag
// @Tags         journal
// @Produce      json
// @Param        id   path      string  true  "Entry id"
// @Success      200  {object}  checkResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /check/{id} [put]
func (h *JournalHandler) Check(c echo.Context) error {
	kind, check, err := h.journal.ToggleCheck(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.ChecksToggledTotal.WithLabelValues(string(kind)).Inc()
	return c.JSON(http.StatusOK, checkResponse{Kind: string(kind), Check: check})
}

// Delete removes the owning entry.
//
// @Summary      Delete an entry
// @Tags         journal
// @Produce      json
// @Param        docid  query     string  true  "Entry id"
// @Success      200    {object}  deleteResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /delete [delete]
func (h *JournalHandler) Delete(c echo.Context) error {
	kind, err := h.journal.DeleteEntry(c.Request().Context(), c.QueryParam("docid"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteResponse{Kind: string(kind), Deleted: true})
}

// Search renders posts whose contents match the query.
func (h *JournalHandler) Search(c echo.Context) error {
	query := c.QueryParam("val")

	posts, err := h.journal.SearchPosts(c.Request().Context(), query)
	if err != nil {
		return err
	}
	metrics.SearchesTotal.Inc()

	return c.Render(http.StatusOK, "search.html", echo.Map{
		"Posts": posts,
		"Query": query,
	})
}
