package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/obras/models"
	"p9e.in/obras/pkg/store"
)

// A DrawingSession is the server-held state of one map-annotation
// editing session. The client sends raw pointer events (click, move,
// double-click) and the server runs the drawing state machine, so the
// snapshot that eventually gets saved was validated at every step.
//
// Sessions are in-memory only. Nothing touches the obra until Save.
type DrawingSession struct {
	ID     uuid.UUID       `json:"id"`
	ObraID uuid.UUID       `json:"obraId"`
	Mode   string          `json:"mode"` // "" means pan, otherwise a ShapeType
	Shapes []models.Shape  `json:"shapes"`
	Draft  []models.LatLng `json:"draft,omitempty"`  // in-progress vertices (anchor for rectangles)
	Cursor *models.LatLng  `json:"cursor,omitempty"` // last pointer position, for previews
	Dirty  bool            `json:"dirty"`

	// metadata applied to shapes created from now on
	Color      string `json:"color,omitempty"`
	Produto    string `json:"produto,omitempty"`
	Observacao string `json:"observacao,omitempty"`

	mu      sync.Mutex
	touched time.Time
}

const sessionIdleTTL = 30 * time.Minute

// sessions is the process-wide registry. Idle sessions are swept so an
// abandoned browser tab doesn't pin memory forever.
var sessions = struct {
	sync.Mutex
	m         map[uuid.UUID]*DrawingSession
	sweepOnce sync.Once
}{m: make(map[uuid.UUID]*DrawingSession)}

func startSessionSweeper() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-sessionIdleTTL)
			sessions.Lock()
			for id, s := range sessions.m {
				s.mu.Lock()
				idle := s.touched.Before(cutoff)
				s.mu.Unlock()
				if idle {
					delete(sessions.m, id)
				}
			}
			sessions.Unlock()
		}
	}()
}

// OpenDrawing starts an editing session seeded with the obra's current
// shape snapshot.
func OpenDrawing(w http.ResponseWriter, r *http.Request) {
	obra, ok := fetchObra(w, r)
	if !ok {
		return
	}

	shapes := make([]models.Shape, len(obra.Mapeamento))
	copy(shapes, obra.Mapeamento)

	s := &DrawingSession{
		ID:      uuid.New(),
		ObraID:  obra.ID,
		Shapes:  shapes,
		touched: time.Now(),
	}

	sessions.Lock()
	sessions.sweepOnce.Do(startSessionSweeper)
	sessions.m[s.ID] = s
	sessions.Unlock()

	writeJSON(w, http.StatusCreated, s)
}

// withSession looks the session up, runs fn under that session's own
// lock and writes the resulting session state back. The registry lock
// is held only for the map lookup, so a slow operation on one session
// (a save doing database round-trips) never stalls the others. fn
// returning an error aborts with the given status.
func withSession(w http.ResponseWriter, r *http.Request, fn func(s *DrawingSession) (int, error)) {
	id, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	sessions.Lock()
	s, ok := sessions.m[id]
	sessions.Unlock()
	if !ok {
		http.Error(w, "drawing session not found or expired", http.StatusNotFound)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()

	if status, err := fn(s); err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func GetDrawing(w http.ResponseWriter, r *http.Request) {
	withSession(w, r, func(s *DrawingSession) (int, error) {
		return 0, nil
	})
}

type setModeReq struct {
	Mode string `json:"mode"`
}

// SetDrawingMode switches the active tool. Any in-progress draft is
// discarded, matching the editor behavior where changing tools cancels
// the half-drawn shape.
func SetDrawingMode(w http.ResponseWriter, r *http.Request) {
	var req setModeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	withSession(w, r, func(s *DrawingSession) (int, error) {
		if req.Mode != "" && !models.ShapeType(req.Mode).Valid() {
			return http.StatusBadRequest, fmt.Errorf("modo de desenho desconhecido %q", req.Mode)
		}
		s.Mode = req.Mode
		s.Draft = nil
		s.Cursor = nil
		return 0, nil
	})
}

type pointReq struct {
	Point models.LatLng `json:"point"`
}

// DrawingClick feeds one click into the state machine. Markers and
// circles are created immediately; polygons and lines accumulate
// vertices; rectangles take an anchor click then a closing click.
func DrawingClick(w http.ResponseWriter, r *http.Request) {
	var req pointReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	withSession(w, r, func(s *DrawingSession) (int, error) {
		p := req.Point.Round()
		switch models.ShapeType(s.Mode) {
		case models.ShapeMarker:
			s.addShape(models.Shape{Tipo: models.ShapeMarker, Position: &p})
		case models.ShapeCircle:
			s.addShape(models.Shape{Tipo: models.ShapeCircle, Center: &p, Radius: models.DefaultCircleRadius})
		case models.ShapePolygon, models.ShapeLine:
			s.Draft = append(s.Draft, p)
		case models.ShapeRectangle:
			if len(s.Draft) == 0 {
				s.Draft = []models.LatLng{p}
				break
			}
			b := models.NewBounds(s.Draft[0], p)
			s.Draft = nil
			s.Cursor = nil
			s.addShape(models.Shape{Tipo: models.ShapeRectangle, Bounds: &b})
		default:
			return http.StatusBadRequest, errors.New("nenhum modo de desenho ativo")
		}
		return 0, nil
	})
}

// DrawingMove updates the pointer position used for previews. It never
// creates geometry.
func DrawingMove(w http.ResponseWriter, r *http.Request) {
	var req pointReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	withSession(w, r, func(s *DrawingSession) (int, error) {
		p := req.Point.Round()
		s.Cursor = &p
		return 0, nil
	})
}

// DrawingDoubleClick finalizes the multi-vertex draft: a polygon needs
// at least 3 vertices, a line at least 2.
func DrawingDoubleClick(w http.ResponseWriter, r *http.Request) {
	withSession(w, r, func(s *DrawingSession) (int, error) {
		switch models.ShapeType(s.Mode) {
		case models.ShapePolygon:
			if len(s.Draft) < 3 {
				return http.StatusBadRequest, errors.New("polígono precisa de pelo menos 3 vértices")
			}
		case models.ShapeLine:
			if len(s.Draft) < 2 {
				return http.StatusBadRequest, errors.New("linha precisa de pelo menos 2 vértices")
			}
		default:
			return http.StatusBadRequest, errors.New("nada a finalizar neste modo")
		}
		s.addShape(models.Shape{Tipo: models.ShapeType(s.Mode), Coordinates: s.Draft})
		s.Draft = nil
		s.Cursor = nil
		return 0, nil
	})
}

type metadataReq struct {
	ShapeID    string  `json:"shapeId,omitempty"`
	Color      *string `json:"color"`
	Produto    *string `json:"produto"`
	Observacao *string `json:"observacao"`
}

// SetDrawingMetadata updates the color/produto/observação defaults for
// shapes created from now on, or patches one existing shape when
// shapeId is given.
func SetDrawingMetadata(w http.ResponseWriter, r *http.Request) {
	var req metadataReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	withSession(w, r, func(s *DrawingSession) (int, error) {
		if req.ShapeID != "" {
			for i := range s.Shapes {
				if s.Shapes[i].ID != req.ShapeID {
					continue
				}
				if req.Color != nil {
					s.Shapes[i].Color = *req.Color
				}
				if req.Produto != nil {
					s.Shapes[i].Produto = *req.Produto
				}
				if req.Observacao != nil {
					s.Shapes[i].Observacao = *req.Observacao
				}
				s.Dirty = true
				return 0, nil
			}
			return http.StatusNotFound, fmt.Errorf("desenho %s não encontrado na sessão", req.ShapeID)
		}
		if req.Color != nil {
			s.Color = *req.Color
		}
		if req.Produto != nil {
			s.Produto = *req.Produto
		}
		if req.Observacao != nil {
			s.Observacao = *req.Observacao
		}
		return 0, nil
	})
}

// RemoveDrawingShape deletes one shape from the working set.
func RemoveDrawingShape(w http.ResponseWriter, r *http.Request) {
	shapeID := mux.Vars(r)["shapeId"]
	withSession(w, r, func(s *DrawingSession) (int, error) {
		for i := range s.Shapes {
			if s.Shapes[i].ID == shapeID {
				s.Shapes = append(s.Shapes[:i], s.Shapes[i+1:]...)
				s.Dirty = true
				return 0, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("desenho %s não encontrado na sessão", shapeID)
	})
}

// ClearDrawing empties the working set. Persisted shapes are untouched
// until Save.
func ClearDrawing(w http.ResponseWriter, r *http.Request) {
	withSession(w, r, func(s *DrawingSession) (int, error) {
		s.Shapes = nil
		s.Draft = nil
		s.Cursor = nil
		s.Dirty = true
		return 0, nil
	})
}

// SaveDrawing writes the session's working set back to the obra as the
// new snapshot. The session stays open, so saving twice is harmless.
func SaveDrawing(w http.ResponseWriter, r *http.Request) {
	withSession(w, r, func(s *DrawingSession) (int, error) {
		for i := range s.Shapes {
			if err := s.Shapes[i].Validate(); err != nil {
				return http.StatusBadRequest, err
			}
		}
		obra, err := db.GetObra(s.ObraID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return http.StatusNotFound, errors.New("obra not found")
			}
			return http.StatusInternalServerError, err
		}
		obra.Mapeamento = s.Shapes
		if err := db.SaveObra(obra); err != nil {
			return http.StatusInternalServerError, err
		}
		s.Dirty = false
		return 0, nil
	})
}

// CloseDrawing discards the session. Unsaved edits are lost.
func CloseDrawing(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}
	sessions.Lock()
	delete(sessions.m, id)
	sessions.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// addShape stamps id, metadata defaults and normalization onto a newly
// drawn shape and appends it to the working set.
func (s *DrawingSession) addShape(shape models.Shape) {
	shape.ID = s.nextShapeID()
	shape.Color = s.Color
	shape.Produto = s.Produto
	shape.Observacao = s.Observacao
	shape.Normalize()
	s.Shapes = append(s.Shapes, shape)
	s.Dirty = true
}

// nextShapeID returns the time-based id, suffixed when two shapes land
// in the same millisecond. The per-shape delete and patch endpoints
// address shapes by id, so the working set must never hold duplicates.
func (s *DrawingSession) nextShapeID() string {
	base := models.NewShapeID(time.Now())
	id := base
	for n := 2; s.hasShapeID(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func (s *DrawingSession) hasShapeID(id string) bool {
	for i := range s.Shapes {
		if s.Shapes[i].ID == id {
			return true
		}
	}
	return false
}
