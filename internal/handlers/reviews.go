package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/crucial707/campsite/internal/middleware"
	"github.com/crucial707/campsite/internal/models"
	"github.com/crucial707/campsite/internal/repo"
	"github.com/crucial707/campsite/internal/session"
)

type ReviewHandler struct {
	Camps   *repo.CampgroundRepo
	Reviews *repo.ReviewRepo
	R       *Renderer
}

// Create adds a review to a campground. Any signed-in user may review.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) error {
	campID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return E(http.StatusNotFound, "Campground not found")
	}
	if _, err := h.Camps.GetByID(r.Context(), campID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return E(http.StatusNotFound, "Campground not found")
		}
		return err
	}

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil || rating < models.RatingMin || rating > models.RatingMax {
		return E(http.StatusBadRequest, "Rating must be between 1 and 5")
	}
	body := strings.TrimSpace(r.FormValue("body"))
	if body == "" {
		return E(http.StatusBadRequest, "Review text is required")
	}

	user := middleware.UserFromContext(r.Context())
	if _, err := h.Reviews.Create(r.Context(), models.Review{
		CampgroundID: campID,
		AuthorID:     user.ID,
		Rating:       rating,
		Body:         body,
	}); err != nil {
		return err
	}

	s := middleware.SessionFromContext(r.Context())
	s.AddFlash(session.FlashSuccess, "Created new review!")
	http.Redirect(w, r, "/campgrounds/"+strconv.Itoa(campID), http.StatusFound)
	return nil
}

// Delete removes a review. Allowed for the review's author and for the
// campground's author (who moderates their own listing).
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	campID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return E(http.StatusNotFound, "Campground not found")
	}
	reviewID, err := strconv.Atoi(chi.URLParam(r, "reviewID"))
	if err != nil {
		return E(http.StatusNotFound, "Review not found")
	}

	review, err := h.Reviews.GetByID(r.Context(), reviewID)
	if errors.Is(err, sql.ErrNoRows) {
		return E(http.StatusNotFound, "Review not found")
	}
	if err != nil {
		return err
	}
	if review.CampgroundID != campID {
		return E(http.StatusNotFound, "Review not found")
	}

	camp, err := h.Camps.GetByID(r.Context(), campID)
	if err != nil {
		return err
	}

	user := middleware.UserFromContext(r.Context())
	if user == nil || (user.ID != review.AuthorID && user.ID != camp.AuthorID) {
		return E(http.StatusForbidden, "You do not have permission to do that")
	}

	if err := h.Reviews.Delete(r.Context(), reviewID); err != nil {
		return err
	}

	s := middleware.SessionFromContext(r.Context())
	s.AddFlash(session.FlashSuccess, "Successfully deleted review")
	http.Redirect(w, r, "/campgrounds/"+strconv.Itoa(campID), http.StatusFound)
	return nil
}
