package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/api/metrics"
	"github.com/daybook/journal-api/internal/core/ports"
)

// Uploader is the sink for avatar files. It returns the
// server-relative path persisted verbatim as the avatar reference.
type Uploader interface {
	Save(file *multipart.FileHeader) (string, error)
}

// ProfileHandler handles the mypage view and profile updates.
type ProfileHandler struct {
	profile  ports.ProfileService
	uploader Uploader
}

func NewProfileHandler(profile ports.ProfileService, uploader Uploader) *ProfileHandler {
	return &ProfileHandler{profile: profile, uploader: uploader}
}

// MyPage renders the authenticated user's profile.
func (h *ProfileHandler) MyPage(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.profile.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "mypage.html", echo.Map{"User": user})
}

// Update applies a partial profile edit: optional avatar upload plus
// the nickname and intro form fields. Merge semantics live in the
// profile service; this handler only turns the multipart body into a
// ProfileUpdateInput.
//
// @Summary      Update the authenticated user's profile
// @Tags         profile
// @Accept       multipart/form-data
// @Param        fileInput  formData  file    false  "Avatar image"
// @Param        nickname   formData  string  false  "New nickname"
// @Param        intro      formData  string  false  "New biography"
// @Success      303
// @Failure      401  {object}  errorResponse
// @Router       /mypage [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	input := ports.ProfileUpdateInput{
		Nickname: c.FormValue("nickname"),
		Bio:      c.FormValue("intro"),
	}

	if file, err := c.FormFile("fileInput"); err == nil && file != nil {
		path, err := h.uploader.Save(file)
		if err != nil {
			return err
		}
		input.AvatarPath = path
	}

	if _, err := h.profile.UpdateProfile(c.Request().Context(), userID, input); err != nil {
		return err
	}

	metrics.ProfileUpdatesTotal.Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}
