package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/boogie/pkg/buildinfo"
	"github.com/matzehuels/boogie/pkg/errors"
	"github.com/matzehuels/boogie/pkg/pipeline"
	"github.com/matzehuels/boogie/pkg/rules"
	"github.com/matzehuels/boogie/pkg/scene"
)

// Response headers set by the augment endpoint.
const (
	HeaderRunID     = "X-Run-Id"
	HeaderCache     = "X-Cache"
	HeaderInputHash = "X-Input-Hash"
)

// PresetInfo describes one preset in the listing.
type PresetInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rules       []string `json:"rules"`
	Default     bool     `json:"default,omitempty"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	names := rules.PresetNames()
	out := make([]PresetInfo, 0, len(names))
	for _, name := range names {
		cfg, err := rules.Preset(name)
		if err != nil {
			s.writeError(w, err)
			return
		}
		out = append(out, PresetInfo{
			Name:        name,
			Description: rules.PresetDescription(name),
			Rules:       cfg.Rules,
			Default:     name == rules.DefaultPreset,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePresetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := rules.Preset(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := cfg.Encode()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/toml")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleAugment(w http.ResponseWriter, r *http.Request) {
	opts, err := augmentOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	doc, err := scene.ReadJSON(r.Body)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidScene, err, "invalid scene document"))
		return
	}

	res, err := s.runner.Augment(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(HeaderRunID, res.RunID)
	w.Header().Set(HeaderInputHash, res.InputHash)
	if res.CacheHit {
		w.Header().Set(HeaderCache, "HIT")
	} else {
		w.Header().Set(HeaderCache, "MISS")
	}
	w.WriteHeader(http.StatusOK)
	if err := scene.WriteJSON(w, res.Document); err != nil {
		s.logger.Warn("write response", "run", res.RunID, "err", err)
	}
}

// augmentOptions reads pipeline options from the query string.
func augmentOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Preset: q.Get("preset")}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", v)
		}
		opts.Seed, opts.SeedSet = seed, true
	}
	for name, dst := range map[string]*bool{"sort": &opts.Sort, "refresh": &opts.Refresh} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
		}
		*dst = b
	}
	return opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
