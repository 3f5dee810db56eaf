package httpapi

import (
	"net/http"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
)

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req types.AccessLogRequest
	if isProtobuf(r) {
		var msg structpb.Struct
		if err := readProto(r, &msg); err != nil {
			writeError(w, http.StatusBadRequest, "bad_protobuf", "invalid protobuf body")
			return
		}
		if err := fromStruct(&msg, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_protobuf", "protobuf body does not match the access log schema")
			return
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.accessLog.Ingest(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}

	status := http.StatusCreated
	if resp.Duplicate {
		status = http.StatusOK
	}
	// Protobuf callers get protobuf back.
	if isProtobuf(r) {
		writeStruct(w, status, resp)
		return
	}
	writeReply(w, r, status, resp)
}

func (s *Server) handleGetAccessLog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "logID")
	if !ok {
		return
	}
	ev, err := s.accessLog.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleDeleteAccessLog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "logID")
	if !ok {
		return
	}
	if err := s.accessLog.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{
		Message: "Log with ID " + strconv.FormatInt(id, 10) + " has been deleted",
	})
}

func (s *Server) handlePersonAccessLog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "personID")
	if !ok {
		return
	}
	q := r.URL.Query()
	list, err := s.accessLog.ListForPerson(r.Context(), id, q.Get("start"), q.Get("end"))
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleVolunteerHours(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "personID")
	if !ok {
		return
	}
	q := r.URL.Query()
	req := types.VolunteerHoursRequest{
		PersonID: id,
		Start:    q.Get("start"),
		End:      q.Get("end"),
	}

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{"checkin_controller", &req.CheckInController},
		{"checkin_door", &req.CheckInDoor},
		{"checkout_controller", &req.CheckOutController},
		{"checkout_door", &req.CheckOutDoor},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", p.name+" must be an integer")
			return
		}
		*p.dst = &v
	}
	if raw := q.Get("sessions"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "sessions must be a boolean")
			return
		}
		req.IncludeSessions = v
	}

	resp, err := s.hours.Volunteer(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeReply(w, r, http.StatusOK, resp)
}
