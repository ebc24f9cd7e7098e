package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/scof/document"
	"github.com/jsphweid/scof/duration"
	"github.com/jsphweid/scof/fraction"
	"github.com/jsphweid/scof/midi"
	"github.com/jsphweid/scof/model"
	"github.com/jsphweid/scof/note"
	"github.com/jsphweid/scof/pitch"
	"github.com/jsphweid/scof/score"
	"github.com/jsphweid/scof/util"
)

type stepFunc func(note.Note, pitch.Pitch) note.Note

var steps = map[string]stepFunc{
	"up":           note.Note.StepUp,
	"down":         note.Note.StepDown,
	"half-up":      note.Note.HalfStepUp,
	"half-down":    note.Note.HalfStepDown,
	"quarter-up":   note.Note.QuarterStepUp,
	"quarter-down": note.Note.QuarterStepDown,
}

// rests turn into this pitch when stepped, unless ?create= says otherwise
var defaultCreate = pitch.New(pitch.C, pitch.MiddleOctave)

func noteView(n note.Note) *model.NoteView {
	view := &model.NoteView{
		Marking:        n.String(),
		Rest:           n.IsRest(),
		DurationNum:    n.Duration.Num,
		DurationDen:    n.Duration.Den,
		VisualDistance: n.VisualDistance(),
	}
	if n.Pitch != nil {
		view.Pitch = &model.PitchView{
			Name:       n.Pitch.Class.Name.String(),
			Accidental: n.Pitch.Class.Accidental.String(),
			Octave:     int(n.Pitch.Octave),
		}
	}
	return view
}

func sessionResponse(id string, sess *session) model.SessionResponse {
	res := model.SessionResponse{
		ID: id,
		Cursor: model.CursorView{
			Measure: sess.cursor.Measure,
			Chan:    sess.cursor.Chan,
			Marking: sess.cursor.Marking,
		},
		MarkingLen: score.MarkingLen(sess.score, sess.cursor),
	}
	if len(sess.score.Movement) > 0 {
		res.Measures = len(sess.score.Movement[0].Bar)
	}
	if n, err := score.Note(sess.score, sess.cursor); err == nil {
		res.Current = noteView(n)
	}
	return res
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var body model.ParseRequestBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	n, err := note.Parse(body.Marking)
	if err != nil {
		s.metrics.parseFailures.Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, noteView(n))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ids := util.GetSortedKeys(s.sessions)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, ids)
}

// handleCreateSession starts from the default movement, or from a movement
// document given as the request body.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sc := document.NewScore()
	if r.ContentLength != 0 {
		mv, err := document.ReadMovement(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		sc.Movement = []model.Movement{mv}
	}

	id, res, err := s.add(&sc)
	if errors.Is(err, ErrTooManySessions) {
		writeError(w, http.StatusTooManyRequests, err)
		return
	}
	s.logger.Info("Opened session", slog.String("id", id))
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, sess *session) error {
		writeJSON(w, http.StatusOK, sessionResponse(id, sess))
		return nil
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.remove(id) {
		writeError(w, http.StatusNotFound, errors.New("no such session"))
		return
	}
	s.logger.Info("Closed session", slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLeft(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, sess *session) error {
		sess.cursor.Left(sess.score)
		writeJSON(w, http.StatusOK, sessionResponse(id, sess))
		return nil
	})
}

func (s *Server) handleRight(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, sess *session) error {
		sess.cursor.Right(sess.score)
		writeJSON(w, http.StatusOK, sessionResponse(id, sess))
		return nil
	})
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var body model.InsertRequestBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.withSession(w, r, func(id string, sess *session) error {
		n, err := note.Parse(body.Marking)
		if err != nil {
			return err
		}
		if err := score.InsertAfter(sess.score, sess.cursor, n); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, sessionResponse(id, sess))
		return nil
	})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, sess *session) error {
		removed, err := score.RemoveAfter(sess.score, sess.cursor)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, noteView(removed))
		return nil
	})
}

func (s *Server) handleSetPitch(w http.ResponseWriter, r *http.Request) {
	var body model.PitchRequestBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := pitch.Parse(body.Pitch)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.withSession(w, r, func(id string, sess *session) error {
		if err := score.SetPitch(sess.score, sess.cursor, p); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, sessionResponse(id, sess))
		return nil
	})
}

func (s *Server) handleSetDuration(w http.ResponseWriter, r *http.Request) {
	var body model.DurationRequestBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.withSession(w, r, func(id string, sess *session) error {
		var err error
		switch {
		case body.Index != nil:
			err = score.SetDurationIndexed(sess.score, sess.cursor, *body.Index)
		case body.Letter != "":
			var f fraction.Fraction
			if f, err = duration.ParseLength(body.Letter); err == nil {
				err = score.SetDuration(sess.score, sess.cursor, f)
			}
		default:
			err = score.SetDuration(sess.score, sess.cursor, fraction.New(body.Num, body.Den))
		}
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, sessionResponse(id, sess))
		return nil
	})
}

func (s *Server) handleDot(w http.ResponseWriter, r *http.Request) {
	var fn func(*model.Score, score.Cursor) error
	switch edit := mux.Vars(r)["edit"]; edit {
	case "add":
		fn = score.Augment
	case "remove":
		fn = score.Diminish
	default:
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown dot edit %q", edit))
		return
	}
	s.withSession(w, r, func(id string, sess *session) error {
		if err := fn(sess.score, sess.cursor); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, sessionResponse(id, sess))
		return nil
	})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	direction := mux.Vars(r)["direction"]
	fn, ok := steps[direction]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown step %q", direction))
		return
	}
	create := defaultCreate
	if q := r.URL.Query().Get("create"); q != "" {
		p, err := pitch.Parse(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		create = p
	}
	s.withSession(w, r, func(id string, sess *session) error {
		if err := score.Step(sess.score, sess.cursor, create, fn); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, sessionResponse(id, sess))
		return nil
	})
}

func (s *Server) handleNewMeasure(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, sess *session) error {
		if err := score.NewMeasure(sess.score); err != nil {
			return err
		}
		writeJSON(w, http.StatusCreated, sessionResponse(id, sess))
		return nil
	})
}

func (s *Server) handleMovement(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, sess *session) error {
		if len(sess.score.Movement) == 0 {
			return score.ErrNoMeasures
		}
		var buf bytes.Buffer
		if err := document.WriteMovement(&buf, sess.score.Movement[0]); err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func (s *Server) handleMidi(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, sess *session) error {
		if len(sess.score.Movement) == 0 {
			return score.ErrNoMeasures
		}
		var buf bytes.Buffer
		if err := midi.WriteMovement(&buf, sess.score.Movement[0]); err != nil {
			return err
		}
		w.Header().Set("Content-Type", "audio/midi")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".mid"))
		_, err := w.Write(buf.Bytes())
		return err
	})
}
