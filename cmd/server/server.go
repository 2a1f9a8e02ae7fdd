package main

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/mrsobakin/battleship/internal/game/field"
	"github.com/mrsobakin/battleship/internal/judge"
)

const (
	PlayerTimeout time.Duration = 2 * time.Second
	GlobalTimeout time.Duration = 30 * time.Second
)

const (
	ErrBadFormat        string = "bad_format"
	ErrBadConfiguration string = "bad_configuration"
	ErrUnknownStrategy  string = "unknown_strategy"
	ErrBusy             string = "busy"
)

type server struct {
	jobs     *semaphore.Weighted
	capacity int64
}

type matchParams struct {
	Width      int      `json:"width" binding:"required,min=1,max=255"`
	Height     int      `json:"height" binding:"required,min=1,max=255"`
	Ships      []int    `json:"ships" binding:"required,min=1,dive,min=1,max=255"`
	Strategies []string `json:"strategies" binding:"required,len=2"`
	Seed       *uint64  `json:"seed"`
}

type seriesParams struct {
	matchParams
	Count int `json:"count" binding:"required,min=1,max=1000"`
}

// Builds the judge and strategies for the request, replying with an
// error if they make no sense.
func (p *matchParams) setup(c *gin.Context) (*judge.Judge, [2]judge.Strategy, uint64, bool) {
	var strategies [2]judge.Strategy

	conf := field.Configuration{
		W: uint8(p.Width),
		H: uint8(p.Height),
	}
	for _, length := range p.Ships {
		conf.Ships = append(conf.Ships, uint8(length))
	}

	if err := conf.IsValid(); err != nil {
		replyError(c, http.StatusBadRequest, ErrBadConfiguration, err)
		return nil, strategies, 0, false
	}

	for i, name := range p.Strategies {
		strategy, err := judge.StrategyByName(name)
		if err != nil {
			replyError(c, http.StatusBadRequest, ErrUnknownStrategy, err)
			return nil, strategies, 0, false
		}
		strategies[i] = strategy
	}

	seed := rand.Uint64()
	if p.Seed != nil {
		seed = *p.Seed
	}

	j := &judge.Judge{
		Configuration: conf,
		PlayerTimeout: PlayerTimeout,
		GlobalTimeout: GlobalTimeout,
	}

	return j, strategies, seed, true
}

func (s *server) acquire(c *gin.Context, n int64) bool {
	if err := s.jobs.Acquire(c.Request.Context(), n); err != nil {
		replyError(c, http.StatusServiceUnavailable, ErrBusy, err)
		return false
	}
	return true
}

func (s *server) handleMatch(c *gin.Context) {
	var params matchParams

	if !tryBindParams(c, &params) {
		return
	}

	j, strategies, seed, ok := params.setup(c)
	if !ok {
		return
	}

	if !s.acquire(c, 1) {
		return
	}
	defer s.jobs.Release(1)

	verdict := j.Judge(c.Request.Context(), strategies, seed)

	c.JSON(http.StatusOK, verdict)
}

func (s *server) handleSeries(c *gin.Context) {
	var params seriesParams

	if !tryBindParams(c, &params) {
		return
	}

	j, strategies, seed, ok := params.setup(c)
	if !ok {
		return
	}

	weight := min(int64(params.Count), s.capacity)
	if !s.acquire(c, weight) {
		return
	}
	defer s.jobs.Release(weight)

	summary, err := j.Series(c.Request.Context(), strategies, seed, params.Count, int(weight))
	if err != nil {
		log.Warn("series aborted", "seed", seed, "err", err)
		replyError(c, http.StatusServiceUnavailable, ErrBusy, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (s *server) RegisterEndpoints(e *gin.Engine) {
	e.POST("/run_match", s.handleMatch)
	e.POST("/run_series", s.handleSeries)
}
