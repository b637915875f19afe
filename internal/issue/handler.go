package issue

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
)

const (
	defaultPageLimit = 25
	maxPageLimit     = 100
)

type Handler struct {
	Log   *slog.Logger
	Store Store
}

type pagination struct {
	Page       int `json:"page"`
	PageLimit  int `json:"pageLimit"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

type listIssuesResponse struct {
	Issues     []Issue    `json:"issues"`
	Pagination pagination `json:"pagination"`
}

func (h *Handler) ListIssues(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defaultPageLimit)

	if limit > maxPageLimit {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Limit cannot exceed %d", maxPageLimit))
		return
	}

	// (page-1)*limit can overflow for extreme page values; any page past
	// the data must still return an empty list, so cap the offset instead
	// of letting it wrap negative.
	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}

	issues, total, err := h.Store.List(r.Context(), limit, offset)
	if err != nil {
		h.Log.Error("issue_list_failed", slog.String("err", err.Error()))
		WriteServerError(w, "An error occurred while fetching issues.", err)
		return
	}
	if issues == nil {
		issues = []Issue{}
	}

	writeJSON(w, http.StatusOK, listIssuesResponse{
		Issues: issues,
		Pagination: pagination{
			Page:       page,
			PageLimit:  limit,
			TotalCount: total,
			TotalPages: (total + limit - 1) / limit,
		},
	})
}

func (h *Handler) GetIssue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	is, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Issue with id %d not found", id))
			return
		}
		h.Log.Error("issue_get_failed", slog.Int64("id", id), slog.String("err", err.Error()))
		WriteServerError(w, "An error occurred while fetching the issue.", err)
		return
	}

	writeJSON(w, http.StatusOK, is)
}

type createIssueResponse struct {
	Message      string `json:"message"`
	CreatedIssue Issue  `json:"createdIssue"`
}

func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		msg := "Invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "Request body required"
		}
		WriteError(w, http.StatusBadRequest, msg)
		return
	}

	if err := req.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	is := Issue{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.ResolvedStatus(),
		Priority:    req.Priority,
		CreatedAt:   Timestamp(),
	}

	id, err := h.Store.Insert(r.Context(), is)
	if err != nil {
		if errors.Is(err, ErrNothingInserted) {
			h.Log.Error("issue_create_no_rows")
			WriteServerError(w, "Failed to create issue", err)
			return
		}
		h.Log.Error("issue_create_failed", slog.String("err", err.Error()))
		WriteServerError(w, "An error occurred while creating the issue", err)
		return
	}
	is.ID = id

	writeJSON(w, http.StatusCreated, createIssueResponse{
		Message:      "Issue created successfully",
		CreatedIssue: is,
	})
}

type updateStatusResponse struct {
	Message         string  `json:"message"`
	WasUpdated      bool    `json:"wasUpdated"`
	UpdateTimeStamp *string `json:"updateTimeStamp"`
}

// UpdateIssueStatus moves an issue to any recognized status. Requesting
// the status the issue already has is an idempotent no-op: nothing is
// written and the response carries a null timestamp.
func (h *Handler) UpdateIssueStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		msg := "Invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "Request body required"
		}
		WriteError(w, http.StatusBadRequest, msg)
		return
	}

	if req.NewStatus == nil {
		WriteError(w, http.StatusBadRequest, "newStatus required")
		return
	}
	newStatus := *req.NewStatus
	if !newStatus.Valid() {
		WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("newStatus must be one of: %s, %s, %s", StatusOpen, StatusInProgress, StatusResolved))
		return
	}

	is, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Issue with id %d not found", id))
			return
		}
		h.Log.Error("issue_get_failed", slog.Int64("id", id), slog.String("err", err.Error()))
		WriteServerError(w, "An error occurred while updating the issue", err)
		return
	}

	if is.Status == newStatus {
		writeJSON(w, http.StatusOK, updateStatusResponse{
			Message:         "Issue status unchanged",
			WasUpdated:      false,
			UpdateTimeStamp: nil,
		})
		return
	}

	ts := Timestamp()
	affected, err := h.Store.UpdateStatus(r.Context(), id, newStatus, ts)
	if err != nil {
		h.Log.Error("issue_update_failed", slog.Int64("id", id), slog.String("err", err.Error()))
		WriteServerError(w, "An error occurred while updating the issue", err)
		return
	}
	// The row can vanish between the read and the write when a delete
	// lands in between.
	if affected == 0 {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Issue with id %d not found", id))
		return
	}

	writeJSON(w, http.StatusOK, updateStatusResponse{
		Message:         "Issue status updated successfully",
		WasUpdated:      true,
		UpdateTimeStamp: &ts,
	})
}

func (h *Handler) DeleteIssue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	affected, err := h.Store.DeleteByID(r.Context(), id)
	if err != nil {
		h.Log.Error("issue_delete_failed", slog.Int64("id", id), slog.String("err", err.Error()))
		WriteServerError(w, "An error occurred while deleting the issue", err)
		return
	}
	if affected == 0 {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Issue with id %d not found", id))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Issue deleted successfully"})
}

// pathID parses the {id} path segment. A non-numeric id is a client
// error, never a not-found.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Issue id must be an integer")
		return 0, false
	}
	return id, true
}

// queryInt reads a positive integer query parameter; anything missing,
// non-numeric, or below 1 falls back to the default.
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
