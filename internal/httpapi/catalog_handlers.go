package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
)

// catalogRoutes mounts the shop layout, chore and equipment resources. They
// share one shape, so the handlers are built from the service methods.
func (s *Server) catalogRoutes(r chi.Router) {
	r.Route("/location", func(r chi.Router) {
		r.Post("/", createHandler(s, s.catalog.CreateLocation))
		r.Get("/all", listHandler(s, s.catalog.ListLocations))
		r.Get("/{locationID}", getHandler(s, "locationID", s.catalog.GetLocation))
		r.Put("/{locationID}", updateHandler(s, "locationID", s.catalog.UpdateLocation))
		r.Patch("/{locationID}", s.lifecycleHandler(store.KindLocation, "locationID"))
		r.Delete("/{locationID}", s.softDeleteHandler(store.KindLocation, "locationID"))
	})
	r.Route("/zone", func(r chi.Router) {
		r.Post("/", createHandler(s, s.catalog.CreateZone))
		r.Get("/all", listHandler(s, s.catalog.ListZones))
		r.Get("/{zoneID}", getHandler(s, "zoneID", s.catalog.GetZone))
		r.Put("/{zoneID}", updateHandler(s, "zoneID", s.catalog.UpdateZone))
		r.Patch("/{zoneID}", s.lifecycleHandler(store.KindZone, "zoneID"))
		r.Delete("/{zoneID}", s.softDeleteHandler(store.KindZone, "zoneID"))
	})
	r.Route("/chore", func(r chi.Router) {
		r.Post("/", createHandler(s, s.catalog.CreateChore))
		r.Get("/all", listHandler(s, s.catalog.ListChores))
		r.Get("/{choreID}", getHandler(s, "choreID", s.catalog.GetChore))
		r.Put("/{choreID}", updateHandler(s, "choreID", s.catalog.UpdateChore))
		r.Patch("/{choreID}", s.lifecycleHandler(store.KindChore, "choreID"))
		r.Delete("/{choreID}", s.softDeleteHandler(store.KindChore, "choreID"))
		r.Get("/{choreID}/ownership", getHandler(s, "choreID", s.catalog.ListChoreOwnerships))
		r.Get("/{choreID}/history", getHandler(s, "choreID", s.catalog.ListChoreHistory))
	})
	r.Route("/chore_ownership", func(r chi.Router) {
		r.Post("/", createHandler(s, s.catalog.CreateChoreOwnership))
		r.Get("/{ownershipID}", getHandler(s, "ownershipID", s.catalog.GetChoreOwnership))
		r.Put("/{ownershipID}", updateHandler(s, "ownershipID", s.catalog.UpdateChoreOwnership))
		r.Patch("/{ownershipID}", s.lifecycleHandler(store.KindChoreOwnership, "ownershipID"))
		r.Delete("/{ownershipID}", s.softDeleteHandler(store.KindChoreOwnership, "ownershipID"))
	})
	r.Route("/chore_history", func(r chi.Router) {
		r.Post("/", createHandler(s, s.catalog.CreateChoreHistory))
		r.Get("/{historyID}", getHandler(s, "historyID", s.catalog.GetChoreHistory))
		r.Put("/{historyID}", updateHandler(s, "historyID", s.catalog.UpdateChoreHistory))
		r.Patch("/{historyID}", s.lifecycleHandler(store.KindChoreHistory, "historyID"))
		r.Delete("/{historyID}", s.softDeleteHandler(store.KindChoreHistory, "historyID"))
	})
	r.Route("/equipment", func(r chi.Router) {
		r.Post("/", createHandler(s, s.catalog.CreateEquipment))
		r.Get("/all", listHandler(s, s.catalog.ListEquipment))
		r.Get("/{equipmentID}", getHandler(s, "equipmentID", s.catalog.GetEquipment))
		r.Put("/{equipmentID}", updateHandler(s, "equipmentID", s.catalog.UpdateEquipment))
		r.Patch("/{equipmentID}", s.lifecycleHandler(store.KindEquipment, "equipmentID"))
		r.Delete("/{equipmentID}", s.softDeleteHandler(store.KindEquipment, "equipmentID"))
	})
	r.Route("/membership_type", func(r chi.Router) {
		r.Post("/", createHandler(s, s.catalog.CreateMembershipType))
		r.Get("/all", listHandler(s, s.catalog.ListMembershipTypes))
		r.Get("/{membershipTypeID}", getHandler(s, "membershipTypeID", s.catalog.GetMembershipType))
		r.Put("/{membershipTypeID}", updateHandler(s, "membershipTypeID", s.catalog.UpdateMembershipType))
		r.Patch("/{membershipTypeID}", s.lifecycleHandler(store.KindMembershipType, "membershipTypeID"))
		r.Delete("/{membershipTypeID}", s.softDeleteHandler(store.KindMembershipType, "membershipTypeID"))
	})
}

// personLinkRoutes mounts equipment grants and memberships under
// /person/{personID}.
func (s *Server) personLinkRoutes(r chi.Router) {
	r.Get("/allowed_equipment", getHandler(s, "personID", s.catalog.ListAllowedEquipment))
	r.Post("/allowed_equipment", linkHandler(s, "equipment", s.catalog.AllowEquipment))
	r.Delete("/allowed_equipment/{equipmentID}", unlinkHandler(s, "equipmentID", "equipment", s.catalog.RevokeEquipment))

	r.Get("/membership", getHandler(s, "personID", s.catalog.ListMemberships))
	r.Post("/membership", linkHandler(s, "membership", s.catalog.AddMembership))
	r.Delete("/membership/{membershipTypeID}", unlinkHandler(s, "membershipTypeID", "membership", s.catalog.RemoveMembership))
}

// linkHandler answers 201 when the link is new and 200 when it already
// existed.
func linkHandler[Req any](s *Server, what string, link func(context.Context, int64, Req) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID, ok := pathID(w, r, "personID")
		if !ok {
			return
		}
		var req Req
		if !decodeJSON(w, r, &req) {
			return
		}
		created, err := link(r.Context(), personID, req)
		if err != nil {
			writeServiceError(w, r, s.logger, err)
			return
		}
		if created {
			writeJSON(w, http.StatusCreated, types.MessageResponse{Message: what + " added"})
			return
		}
		writeJSON(w, http.StatusOK, types.MessageResponse{Message: what + " already present"})
	}
}

func unlinkHandler(s *Server, param, what string, unlink func(context.Context, int64, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID, ok := pathID(w, r, "personID")
		if !ok {
			return
		}
		targetID, ok := pathID(w, r, param)
		if !ok {
			return
		}
		if err := unlink(r.Context(), personID, targetID); err != nil {
			writeServiceError(w, r, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, types.MessageResponse{Message: what + " removed"})
	}
}

func createHandler[Req, Resp any](s *Server, create func(context.Context, Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if !decodeJSON(w, r, &req) {
			return
		}
		out, err := create(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, s.logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

func listHandler[Resp any](s *Server, list func(context.Context) ([]Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := list(r.Context())
		if err != nil {
			writeServiceError(w, r, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler[Resp any](s *Server, param string, get func(context.Context, int64) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, param)
		if !ok {
			return
		}
		out, err := get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateHandler[Req, Resp any](s *Server, param string, update func(context.Context, int64, Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, param)
		if !ok {
			return
		}
		var req Req
		if !decodeJSON(w, r, &req) {
			return
		}
		out, err := update(r.Context(), id, req)
		if err != nil {
			writeServiceError(w, r, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) lifecycleHandler(kind store.Kind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, param)
		if !ok {
			return
		}
		var req types.LifecycleRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := s.catalog.Lifecycle(r.Context(), kind, id, req.Action); err != nil {
			writeServiceError(w, r, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, types.MessageResponse{Message: string(kind) + " " + req.Action + " applied"})
	}
}

func (s *Server) softDeleteHandler(kind store.Kind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, param)
		if !ok {
			return
		}
		if err := s.catalog.Delete(r.Context(), kind, id); err != nil {
			writeServiceError(w, r, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, types.MessageResponse{Message: string(kind) + " has been soft deleted"})
	}
}
