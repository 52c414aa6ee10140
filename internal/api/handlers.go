package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/katalvlaran/fracturedpane/fracture"
	"github.com/katalvlaran/fracturedpane/pathcode"
	"github.com/katalvlaran/fracturedpane/render"
	"github.com/katalvlaran/fracturedpane/slicer"
	"github.com/katalvlaran/fracturedpane/taxonomy"
)

// request is the body shared by every /api endpoint. Unset fields fall back
// to the server configuration.
type request struct {
	Relations   []pathcode.Relation `json:"relations"`
	Seed        *int64              `json:"seed,omitempty"`
	OffsetMin   *float64            `json:"offset_min,omitempty"`
	OffsetMax   *float64            `json:"offset_max,omitempty"`
	Shuffle     bool                `json:"shuffle,omitempty"`
	ShowUnnamed *bool               `json:"show_unnamed,omitempty"`
}

type regionJSON struct {
	Path     string        `json:"path"`
	Concept  string        `json:"concept"`
	Color    string        `json:"color"`
	Boundary [][2]float64  `json:"boundary"`
	Cut      [2][2]float64 `json:"cut"`
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	tbl, err := pathcode.Build(s.relations(req))
	if err != nil {
		s.domainError(w, r, err)
		return
	}
	st := statsFrom(r.Context())
	st.relations, st.concepts = len(req.Relations), tbl.Len()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"rows": tbl.Rows(),
	})
}

func (s *Server) handleFracture(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	regions, err := s.fracture(r, req)
	if err != nil {
		s.domainError(w, r, err)
		return
	}

	out := make([]regionJSON, len(regions))
	for i, reg := range regions {
		out[i] = toJSON(reg)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"seed":    s.seed(req),
		"regions": out,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	regions, err := s.fracture(r, req)
	if err != nil {
		s.domainError(w, r, err)
		return
	}

	opts := s.cfg.RenderOptions()
	if req.ShowUnnamed != nil {
		opts = append(opts, render.WithShowUnnamed(*req.ShowUnnamed))
	}
	var buf bytes.Buffer
	if err = render.SVG(&buf, regions, opts...); err != nil {
		s.domainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

// decode reads and checks the request body, answering the client itself
// when it cannot.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (request, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxBodyBytes), http.StatusRequestEntityTooLarge)
			return req, false
		}
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return req, false
	}
	if len(req.Relations) == 0 {
		jsonError(w, "relations are required", http.StatusBadRequest)
		return req, false
	}
	if len(req.Relations) > s.cfg.MaxRelations {
		jsonError(w, fmt.Sprintf("too many relations (%d > %d)", len(req.Relations), s.cfg.MaxRelations), http.StatusRequestEntityTooLarge)
		return req, false
	}
	return req, true
}

func (s *Server) seed(req request) int64 {
	if req.Seed != nil {
		return *req.Seed
	}
	return s.cfg.Seed
}

// relations applies the optional seeded shuffle.
func (s *Server) relations(req request) []pathcode.Relation {
	if !req.Shuffle {
		return req.Relations
	}
	return taxonomy.Shuffle(req.Relations, rand.New(rand.NewSource(s.seed(req))))
}

// fracture encodes and fractures the request's taxonomy, stopping early if
// the client goes away.
func (s *Server) fracture(r *http.Request, req request) ([]fracture.Region, error) {
	tbl, err := pathcode.Build(s.relations(req))
	if err != nil {
		return nil, err
	}
	st := statsFrom(r.Context())
	st.relations, st.concepts = len(req.Relations), tbl.Len()

	lo, hi := s.cfg.OffsetMin, s.cfg.OffsetMax
	if req.OffsetMin != nil {
		lo = *req.OffsetMin
	}
	if req.OffsetMax != nil {
		hi = *req.OffsetMax
	}
	opts := append(s.cfg.FractureOptions(),
		fracture.WithOffsetBand(lo, hi),
		fracture.WithSeed(s.seed(req)),
		fracture.WithContext(r.Context()),
	)
	regions, err := fracture.Fracture(tbl, opts...)
	if err != nil {
		return nil, err
	}
	st.regions, st.seed, st.seeded = len(regions), s.seed(req), true
	return regions, nil
}

// domainError maps errors from the core packages onto HTTP statuses.
func (s *Server) domainError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
	}
	jsonError(w, err.Error(), code)
}

func statusFor(err error) int {
	for _, target := range []error{
		pathcode.ErrEmptyConcept,
		pathcode.ErrCycleOrUnknownParent,
		pathcode.ErrPathCollision,
		fracture.ErrEncodingLookup,
		fracture.ErrUnknownAngle,
		fracture.ErrOptionViolation,
		slicer.ErrDegenerateSlice,
		slicer.ErrInvalidPolygon,
		slicer.ErrDegenerateSegment,
		render.ErrNoRegions,
	} {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

func toJSON(r fracture.Region) regionJSON {
	verts := slicer.Vertices(r.Boundary)
	out := regionJSON{
		Path:     r.Path,
		Concept:  r.Concept,
		Color:    render.Color(r.Path).String(),
		Boundary: make([][2]float64, len(verts)),
		Cut:      [2][2]float64{{r.Cut.A.X, r.Cut.A.Y}, {r.Cut.B.X, r.Cut.B.Y}},
	}
	for i, p := range verts {
		out.Boundary[i] = [2]float64{p.X, p.Y}
	}
	return out
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
