package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/crucial707/campsite/internal/geocode"
	"github.com/crucial707/campsite/internal/metrics"
	"github.com/crucial707/campsite/internal/middleware"
	"github.com/crucial707/campsite/internal/models"
	"github.com/crucial707/campsite/internal/repo"
	"github.com/crucial707/campsite/internal/session"
	"github.com/crucial707/campsite/internal/storage"
)

const (
	campgroundsPerPage = 20
	// multipartMaxMemory caps how much of an upload stays in memory.
	multipartMaxMemory = 8 << 20
)

type CampgroundHandler struct {
	Camps   *repo.CampgroundRepo
	Reviews *repo.ReviewRepo
	// Geocoder may be nil; campgrounds then get no coordinates.
	Geocoder *geocode.Client
	// Images may be nil; uploads are then skipped.
	Images storage.ObjectStore
	R      *Renderer
}

// List renders the index, optionally filtered by a search term.
func (h *CampgroundHandler) List(w http.ResponseWriter, r *http.Request) error {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}
	offset := (page - 1) * campgroundsPerPage

	var (
		camps []models.Campground
		err   error
	)
	if search != "" {
		camps, err = h.Camps.SearchPaginated(r.Context(), search, campgroundsPerPage, offset)
	} else {
		camps, err = h.Camps.ListPaginated(r.Context(), campgroundsPerPage, offset)
	}
	if err != nil {
		return err
	}

	prevPage := 0
	if page > 1 {
		prevPage = page - 1
	}
	nextPage := 0
	if len(camps) == campgroundsPerPage {
		nextPage = page + 1
	}

	h.R.Render(w, r, http.StatusOK, "campgrounds_index.html", map[string]interface{}{
		"Campgrounds": camps,
		"SearchQuery": search,
		"Page":        page,
		"PrevPage":    prevPage,
		"NextPage":    nextPage,
	})
	return nil
}

// NewForm renders the create form.
func (h *CampgroundHandler) NewForm(w http.ResponseWriter, r *http.Request) error {
	h.R.Render(w, r, http.StatusOK, "campgrounds_new.html", nil)
	return nil
}

// Create makes a campground owned by the current user, geocoding its
// location and storing any uploaded images.
func (h *CampgroundHandler) Create(w http.ResponseWriter, r *http.Request) error {
	user := middleware.UserFromContext(r.Context())

	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return E(http.StatusBadRequest, "Invalid form submission")
	}

	camp, herr := campgroundFromForm(r)
	if herr != nil {
		return herr
	}
	camp.AuthorID = user.ID

	if pt := h.geocodeLocation(r.Context(), camp.Location); pt != nil {
		camp.Longitude = &pt.Longitude
		camp.Latitude = &pt.Latitude
	}

	camp, err := h.Camps.Create(r.Context(), camp)
	if err != nil {
		return err
	}

	if err := h.storeUploads(r, camp.ID); err != nil {
		return err
	}

	s := middleware.SessionFromContext(r.Context())
	s.AddFlash(session.FlashSuccess, "Successfully made a new campground!")
	http.Redirect(w, r, "/campgrounds/"+strconv.Itoa(camp.ID), http.StatusFound)
	return nil
}

// Show renders one campground with its reviews and map.
func (h *CampgroundHandler) Show(w http.ResponseWriter, r *http.Request) error {
	camp, err := h.findCampground(r)
	if err != nil {
		return err
	}

	reviews, err := h.Reviews.ListForCampground(r.Context(), camp.ID)
	if err != nil {
		return err
	}

	h.R.Render(w, r, http.StatusOK, "campgrounds_show.html", map[string]interface{}{
		"Campground": camp,
		"Reviews":    reviews,
	})
	return nil
}

// EditForm renders the edit form; author only.
func (h *CampgroundHandler) EditForm(w http.ResponseWriter, r *http.Request) error {
	camp, err := h.findOwnedCampground(r)
	if err != nil {
		return err
	}
	h.R.Render(w, r, http.StatusOK, "campgrounds_edit.html", map[string]interface{}{
		"Campground": camp,
	})
	return nil
}

// Update rewrites a campground's fields; author only. Checked images are
// removed and new uploads appended.
func (h *CampgroundHandler) Update(w http.ResponseWriter, r *http.Request) error {
	camp, err := h.findOwnedCampground(r)
	if err != nil {
		return err
	}

	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return E(http.StatusBadRequest, "Invalid form submission")
	}

	updated, herr := campgroundFromForm(r)
	if herr != nil {
		return herr
	}
	updated.ID = camp.ID

	if updated.Location != camp.Location {
		if pt := h.geocodeLocation(r.Context(), updated.Location); pt != nil {
			updated.Longitude = &pt.Longitude
			updated.Latitude = &pt.Latitude
		}
	} else {
		updated.Longitude = camp.Longitude
		updated.Latitude = camp.Latitude
	}

	if _, err := h.Camps.Update(r.Context(), updated); err != nil {
		return err
	}

	if toDelete := r.Form["deleteImages"]; len(toDelete) > 0 {
		deleted, err := h.Camps.DeleteImages(r.Context(), camp.ID, toDelete)
		if err != nil {
			return err
		}
		h.removeObjects(r.Context(), deleted)
	}

	if err := h.storeUploads(r, camp.ID); err != nil {
		return err
	}

	s := middleware.SessionFromContext(r.Context())
	s.AddFlash(session.FlashSuccess, "Successfully updated campground!")
	http.Redirect(w, r, "/campgrounds/"+strconv.Itoa(camp.ID), http.StatusFound)
	return nil
}

// Delete removes a campground, its reviews, and its stored images; author only.
func (h *CampgroundHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	camp, err := h.findOwnedCampground(r)
	if err != nil {
		return err
	}

	filenames, err := h.Camps.Delete(r.Context(), camp.ID)
	if err != nil {
		return err
	}
	h.removeObjects(r.Context(), filenames)

	s := middleware.SessionFromContext(r.Context())
	s.AddFlash(session.FlashSuccess, "Successfully deleted campground")
	http.Redirect(w, r, "/campgrounds", http.StatusFound)
	return nil
}

// findCampground resolves the {id} route param; a bad or unknown ID is a 404.
func (h *CampgroundHandler) findCampground(r *http.Request) (models.Campground, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return models.Campground{}, E(http.StatusNotFound, "Campground not found")
	}
	camp, err := h.Camps.GetByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Campground{}, E(http.StatusNotFound, "Campground not found")
	}
	return camp, err
}

// findOwnedCampground additionally rejects users who are not the author.
func (h *CampgroundHandler) findOwnedCampground(r *http.Request) (models.Campground, error) {
	camp, err := h.findCampground(r)
	if err != nil {
		return camp, err
	}
	user := middleware.UserFromContext(r.Context())
	if user == nil || user.ID != camp.AuthorID {
		return camp, E(http.StatusForbidden, "You do not have permission to do that")
	}
	return camp, nil
}

func (h *CampgroundHandler) geocodeLocation(ctx context.Context, location string) *geocode.Point {
	if h.Geocoder == nil {
		return nil
	}
	pt, err := h.Geocoder.Forward(ctx, location)
	if err != nil {
		// A campground without a map beats a failed submission.
		slog.Error("geocode", "location", location, "err", err)
		return nil
	}
	return pt
}

// storeUploads saves every uploaded "image" file and attaches it to the
// campground. A nil object store skips uploads entirely.
func (h *CampgroundHandler) storeUploads(r *http.Request, campgroundID int) error {
	if h.Images == nil || r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		return nil
	}

	var images []models.Image
	for _, hdr := range files {
		img, err := h.storeOne(r.Context(), hdr)
		if err != nil {
			metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
			return err
		}
		metrics.ImageUploadsTotal.WithLabelValues("ok").Inc()
		images = append(images, img)
	}
	return h.Camps.AddImages(r.Context(), campgroundID, images)
}

func (h *CampgroundHandler) storeOne(ctx context.Context, hdr *multipart.FileHeader) (models.Image, error) {
	f, err := hdr.Open()
	if err != nil {
		return models.Image{}, err
	}
	defer f.Close()

	objectName := storage.NewObjectName(hdr.Filename)
	url, err := h.Images.Put(ctx, objectName, hdr.Header.Get("Content-Type"), f, hdr.Size)
	if err != nil {
		return models.Image{}, err
	}
	return models.Image{URL: url, Filename: objectName}, nil
}

// removeObjects deletes image objects best-effort: the rows are already
// gone, a leaked object only costs storage.
func (h *CampgroundHandler) removeObjects(ctx context.Context, filenames []string) {
	if h.Images == nil {
		return
	}
	for _, f := range filenames {
		if err := h.Images.Remove(ctx, f); err != nil {
			slog.Error("remove image object", "object", f, "err", err)
		}
	}
}

// campgroundFromForm validates the submitted fields.
func campgroundFromForm(r *http.Request) (models.Campground, *HTTPError) {
	title := strings.TrimSpace(r.FormValue("title"))
	location := strings.TrimSpace(r.FormValue("location"))
	description := strings.TrimSpace(r.FormValue("description"))
	priceStr := strings.TrimSpace(r.FormValue("price"))

	if title == "" || location == "" || priceStr == "" {
		return models.Campground{}, E(http.StatusBadRequest, "Title, location, and price are required")
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return models.Campground{}, E(http.StatusBadRequest, "Price must be a non-negative number")
	}

	return models.Campground{
		Title:       title,
		Location:    location,
		Description: description,
		Price:       price,
	}, nil
}
