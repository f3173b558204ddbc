package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/xtding233/pull-predictor/internal/gacha"
	"github.com/xtding233/pull-predictor/internal/game"
	"github.com/xtding233/pull-predictor/internal/pricing"
)

var validate = validator.New()

type oddsRequest struct {
	Pulls   int    `validate:"min=1,max=10000"`
	Mode    string `validate:"omitempty,max=64"`
	PoolSR  *int   `validate:"omitempty,min=0"`
	PoolSSR *int   `validate:"omitempty,min=0"`
	Game    string `validate:"omitempty,max=64"`
	Banner  string `validate:"omitempty,max=64,excluded_without=Game"`

	FirstTime []string `validate:"omitempty,dive,required,max=64"`
}

type oddsResponse struct {
	gacha.ComputationResult
	Game   string `json:"game,omitempty"`
	Banner string `json:"banner,omitempty"`
	Token  string `json:"token"`
	Cached bool   `json:"cached"`
}

type pityResponse struct {
	Pulls int              `json:"pulls"`
	Pity  gacha.PityResult `json:"pity"`
	Token string           `json:"token"`
	Plan  *pricing.Plan    `json:"plan,omitempty"`
	Total string           `json:"total,omitempty"`
}

type errResp struct {
	Err string `json:"err"`
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

// parseOddsRequest reads query params into a validated request.
func parseOddsRequest(r *http.Request) (oddsRequest, string) {
	q := r.URL.Query()
	req := oddsRequest{Mode: q.Get("mode"), Game: q.Get("game"), Banner: q.Get("banner")}

	// first_time=a,b and first_time=a&first_time=b are equivalent
	for _, v := range q["first_time"] {
		req.FirstTime = append(req.FirstTime, strings.Split(v, ",")...)
	}

	pulls, ok, msg := parseInt(r, "pulls")
	if msg != "" {
		return req, msg
	}
	if !ok {
		return req, "missing param pulls"
	}
	req.Pulls = pulls

	for key, dst := range map[string]**int{"pool_sr": &req.PoolSR, "pool_ssr": &req.PoolSSR} {
		v, ok, msg := parseInt(r, key)
		if msg != "" {
			return req, msg
		}
		if ok {
			*dst = &v
		}
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return req, "invalid param " + verrs[0].Field()
		}
		return req, err.Error()
	}
	return req, ""
}

// resolve turns a request into engine input, through a preset when game is set.
func (s *Server) resolve(req oddsRequest) (game.Resolved, error) {
	o := game.Overrides{PoolSR: req.PoolSR, PoolSSR: req.PoolSSR}
	if req.Mode != "" {
		o.Mode = &req.Mode
	}

	var (
		res game.Resolved
		err error
	)
	if req.Game != "" {
		res, err = s.presets.Resolve(req.Game, req.Banner, o)
	} else {
		res, err = game.ResolveDefaults(o)
	}
	if err != nil {
		return game.Resolved{}, err
	}
	res.Config.Pulls = req.Pulls
	return res, nil
}

func (s *Server) handleOdds(w http.ResponseWriter, r *http.Request) {
	req, msg := parseOddsRequest(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	res, err := s.resolve(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out, cached, err := s.cache.compute(res.Config, res.Token)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Debug("odds computed",
		zap.Int("pulls", res.Config.Pulls),
		zap.String("mode", string(res.Config.Mode)),
		zap.Bool("cached", cached),
	)
	writeJSON(w, http.StatusOK, oddsResponse{
		ComputationResult: out,
		Game:              res.Game,
		Banner:            res.Banner,
		Token:             res.Token.Name,
		Cached:            cached,
	})
}

func (s *Server) handlePity(w http.ResponseWriter, r *http.Request) {
	req, msg := parseOddsRequest(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	res, err := s.resolve(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := pityResponse{
		Pulls: req.Pulls,
		Pity:  gacha.ComputePity(req.Pulls, res.Token),
		Token: res.Token.Name,
	}
	if res.Catalog != nil {
		first, err := pricing.ParseFirstTime(*res.Catalog, req.FirstTime)
		if err != nil {
			s.writeError(w, err)
			return
		}
		plan := pricing.MinCostAtLeastTokens(*res.Catalog, out.Pity.Cost, first)
		out.Plan = &plan
		out.Total = plan.Total()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	games, err := s.presets.Games()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"games": games})
}

// writeError maps engine and preset errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gacha.ErrInvalidMode), errors.Is(err, gacha.ErrInvalidPulls), errors.Is(err, game.ErrBadName),
		errors.Is(err, pricing.ErrUnknownPack):
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
	default:
		s.log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errResp{Err: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
