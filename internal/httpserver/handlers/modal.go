package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lunaria/lunaria/internal/httpserver/deps"
	"github.com/lunaria/lunaria/internal/modal"
	"github.com/lunaria/lunaria/internal/notify"
)

// openModalPayload asks for one surface; opening always replaces
// whatever surface was active before.
type openModalPayload struct {
	Surface string `json:"surface" validate:"required,oneof=add-edit confirm share export-import add-by-url main-menu"`

	// EntryID selects the edit target (add-edit) or the entry to
	// share (share). Empty add-edit means "create new".
	EntryID string `json:"entry_id"`

	// Action names the guarded operation behind a confirm surface.
	Action string `json:"action" validate:"omitempty,oneof=delete-entry delete-all sign-out"`
}

// ModalState serves a snapshot of the modal coordinator.
func ModalState(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Session.Modal().State())
	}
}

// OpenModal opens one of the modal surfaces. Confirmable actions are
// defined here, server side; the coordinator only carries them.
func OpenModal(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload openModalPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		coord := d.Session.Modal()
		switch modal.Surface(payload.Surface) {
		case modal.SurfaceAddEdit:
			if payload.EntryID == "" {
				coord.OpenAddEdit(nil)
				break
			}
			entry, ok := d.Session.Entry(payload.EntryID)
			if !ok {
				writeError(w, http.StatusNotFound, "entry not found")
				return
			}
			coord.OpenAddEdit(entry)

		case modal.SurfaceConfirm:
			req, err := buildConfirm(d, payload)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			coord.OpenConfirm(req)

		case modal.SurfaceShare:
			entry, ok := d.Session.Entry(payload.EntryID)
			if !ok {
				writeError(w, http.StatusNotFound, "entry not found")
				return
			}
			coord.OpenShareEntry(entry)

		case modal.SurfaceExportImport:
			coord.OpenExportImport()
		case modal.SurfaceAddByURL:
			coord.OpenAddByURL()
		case modal.SurfaceMainMenu:
			coord.OpenMainMenu()
		}

		writeJSON(w, http.StatusOK, coord.State())
	}
}

// buildConfirm maps an action name to its guarded operation.
func buildConfirm(d deps.Deps, payload openModalPayload) (modal.ConfirmRequest, error) {
	switch payload.Action {
	case "delete-entry":
		id := payload.EntryID
		if _, ok := d.Session.Entry(id); !ok {
			return modal.ConfirmRequest{}, fmt.Errorf("entry not found")
		}
		return modal.ConfirmRequest{
			Message:     "Delete this entry?",
			ConfirmText: "Delete",
			Action: func(ctx context.Context) error {
				return d.Session.Delete(ctx, id)
			},
		}, nil

	case "delete-all":
		return modal.ConfirmRequest{
			Message:     "Delete all entries? This cannot be undone.",
			ConfirmText: "Delete everything",
			Action:      d.Session.DeleteAll,
		}, nil

	case "sign-out":
		return modal.ConfirmRequest{
			Message:     "Sign out?",
			ConfirmText: "Sign out",
			Action: func(ctx context.Context) error {
				d.Session.Notify("Signed out", notify.SeverityInfo)
				return nil
			},
		}, nil

	default:
		return modal.ConfirmRequest{}, fmt.Errorf("confirm surface needs an action")
	}
}

// closeModalPayload optionally scopes the close to one surface.
type closeModalPayload struct {
	Surface string `json:"surface" validate:"omitempty,oneof=add-edit confirm share export-import add-by-url main-menu"`
}

// CloseModal closes the active surface. With a surface in the body the
// close only applies when that surface is the active one.
func CloseModal(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload closeModalPayload
		if r.ContentLength > 0 {
			if err := decodeJSON(w, r, &payload); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		coord := d.Session.Modal()
		if payload.Surface == "" {
			coord.Close()
		} else {
			coord.CloseSurface(modal.Surface(payload.Surface))
		}
		writeJSON(w, http.StatusOK, coord.State())
	}
}

// ConfirmModal runs the pending guarded action. The surface returns to
// closed whether the action succeeds or not.
func ConfirmModal(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Session.Modal().Confirm(r.Context()); err != nil {
			writeError(w, storeStatus(err), "confirmed action failed")
			return
		}
		writeJSON(w, http.StatusOK, d.Session.Modal().State())
	}
}

// ShareCollection opens the share surface for the whole collection,
// provisioning the share code on first use.
func ShareCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Session.Modal().OpenShareCollection(r.Context()); err != nil {
			writeError(w, storeStatus(err), "could not open the share dialog")
			return
		}
		writeJSON(w, http.StatusOK, d.Session.Modal().State())
	}
}
