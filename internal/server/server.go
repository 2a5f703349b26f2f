// Package server exposes a loaded index over HTTP: index metadata, batch
// read search, a health probe and the OpenAPI document.
package server

import (
	"fmt"
	"log"
	"net/http"

	restful "github.com/emicklei/go-restful"
	restfulspec "github.com/emicklei/go-restful-openapi"

	"hibf-hashing/internal/index"
	"hibf-hashing/internal/output"
	"hibf-hashing/internal/pipeline"
	"hibf-hashing/internal/threshold"
	"hibf-hashing/pkg/api"
)

// MaxReadsPerRequest bounds POST /search bodies.
const MaxReadsPerRequest = 100000

// Config holds the defaults applied to requests that do not override them.
type Config struct {
	Errors   int
	Fraction float64
	Strict   bool
}

// Server serves one index. It is safe for concurrent requests.
type Server struct {
	idx       *index.Index
	cfg       Config
	container *restful.Container
}

func New(idx *index.Index, cfg Config) (*Server, error) {
	if idx == nil || idx.Filter == nil {
		return nil, fmt.Errorf("server: no index loaded")
	}
	if _, err := pipeline.NewSearcher(searchConfig(idx, cfg.Errors, cfg.Fraction, cfg.Strict)); err != nil {
		return nil, err
	}
	s := &Server{idx: idx, cfg: cfg, container: restful.NewContainer()}
	s.setup()
	return s, nil
}

func searchConfig(idx *index.Index, errors int, fraction float64, strict bool) pipeline.SearchConfig {
	return pipeline.SearchConfig{
		Hash:     idx.Meta.HashParams(),
		Errors:   errors,
		Fraction: fraction,
		Strict:   strict,
	}
}

func (s *Server) setup() {
	c := s.container
	c.Router(restful.CurlyRouter{})

	ws := &restful.WebService{}
	ws.Consumes(restful.MIME_JSON)
	ws.Produces(restful.MIME_JSON)

	ws.Route(ws.GET("/index").To(s.getIndex).
		Doc("describe the loaded index").
		Writes(api.IndexInfoV1{}))
	ws.Route(ws.POST("/search").To(s.search).
		Doc("query reads against the index; hits keep request order").
		Reads(api.SearchRequestV1{}).
		Writes([]api.HitV1{}).
		Returns(http.StatusOK, "OK", []api.HitV1{}).
		Returns(http.StatusBadRequest, "invalid request", nil))
	c.Add(ws)

	c.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices: c.RegisteredWebServices(),
		APIPath:     "/swagger.json",
	}))

	c.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))

	c.Filter(restful.CrossOriginResourceSharing{
		CookiesAllowed: true,
		Container:      c,
	}.Filter)
	c.Filter(c.OPTIONSFilter)
}

// Handler is the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.container }

func (s *Server) fail(req *restful.Request, res *restful.Response, code int, err error) {
	log.Printf("server: %s: failed: %v", req.Request.URL.Path, err)
	res.WriteErrorString(code, err.Error())
}

func (s *Server) getIndex(req *restful.Request, res *restful.Response) {
	res.WriteEntity(output.ToIndexInfo(s.idx))
}

func (s *Server) search(req *restful.Request, res *restful.Response) {
	body := api.SearchRequestV1{}
	if err := req.ReadEntity(&body); err != nil {
		s.fail(req, res, http.StatusBadRequest, err)
		return
	}
	if len(body.Reads) > MaxReadsPerRequest {
		s.fail(req, res, http.StatusBadRequest,
			fmt.Errorf("too many reads: %d > %d", len(body.Reads), MaxReadsPerRequest))
		return
	}

	errs := s.cfg.Errors
	if body.Errors != nil {
		errs = *body.Errors
	}
	fraction := s.cfg.Fraction
	if body.Threshold != 0 {
		fraction = body.Threshold
	}
	if errs < 0 || errs > threshold.MaxErrors {
		s.fail(req, res, http.StatusBadRequest, fmt.Errorf("errors must be in [0, %d]", threshold.MaxErrors))
		return
	}
	searcher, err := pipeline.NewSearcher(searchConfig(s.idx, errs, fraction, s.cfg.Strict))
	if err != nil {
		s.fail(req, res, http.StatusBadRequest, err)
		return
	}

	agent := s.idx.Filter.MembershipAgent()
	out := make([]api.HitV1, 0, len(body.Reads))
	for i, r := range body.Reads {
		h := searcher.Query(agent, r.ID, []byte(r.Seq))
		h.Ordinal = i
		out = append(out, output.ToAPIHit(h, s.idx.Meta.Bins))
	}
	res.WriteEntity(out)
}
