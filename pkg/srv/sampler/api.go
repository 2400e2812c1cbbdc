/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// go-sampler API
//
// # RESTful API to interact with the go-sampler daemon
//
// Schemes: http
// Host: localhost:8005
// Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package sampler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-sampler/pkg/config"
	"jinr.ru/greenlab/go-sampler/pkg/log"
	"jinr.ru/greenlab/go-sampler/pkg/source/ifc"
	"jinr.ru/greenlab/go-sampler/pkg/srv"
	samplerifc "jinr.ru/greenlab/go-sampler/pkg/srv/sampler/ifc"
)

// Injection is an injection request body
type Injection struct {
	Channel int   `json:"channel"`
	MV      int32 `json:"mv"`
}

// InjectionResult reports the value actually applied after clamping
type InjectionResult struct {
	Channel int   `json:"channel"`
	MV      int32 `json:"mv"`
	Clamped bool  `json:"clamped,omitempty"`
}

const apiSpecJSON = `{
  "swagger": "2.0",
  "info": {"title": "go-sampler API", "version": "1.0.0"},
  "basePath": "/api",
  "consumes": ["application/json"],
  "produces": ["application/json"],
  "paths": {
    "/regs": {
      "get": {
        "summary": "Read the register file snapshot",
        "responses": {"200": {"description": "consistent snapshot of the latest sampling round"}}
      }
    },
    "/inject": {
      "post": {
        "summary": "Inject a channel value (sim backend only)",
        "responses": {
          "200": {"description": "applied value after clamping"},
          "400": {"description": "injection not supported or malformed request"},
          "404": {"description": "no such channel"}
        }
      }
    }
  }
}`

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	sampler samplerifc.SamplerServer
	spec    *loads.Document
}

var _ samplerifc.ApiServer = &ApiServer{}

func NewApiServer(ctx context.Context, cfg *config.Config, smpl samplerifc.SamplerServer) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.IP, srv.ApiPort)

	spec, err := loads.Analyzed(json.RawMessage(apiSpecJSON), "")
	if err != nil {
		return nil, err
	}
	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		sampler: smpl,
		spec:    spec,
	}
	return s, nil
}

// Run ...
func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s port: %d", s.Config.IP, srv.ApiPort)
	s.configureRouter()
	httpServer := &http.Server{
		Handler: handlers.LoggingHandler(os.Stderr, s.Router),
		Addr:    fmt.Sprintf("%s:%d", s.Config.IP, srv.ApiPort),
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	// swagger:operation GET /regs read register file
	// ---
	// summary: read the register file snapshot
	// description: seq, last update uptime in ms and one millivolt value per channel
	// responses:
	//   "200":
	//     description: consistent snapshot
	subRouter.HandleFunc("/regs", s.handleRegsRead()).Methods("GET")
	// swagger:operation POST /inject inject channel value
	// ---
	// summary: force the channel source to report a value on the next round
	// description: sim backend only, value is clamped to [0, reference]
	// responses:
	//   "200":
	//     description: applied value
	//   "400":
	//     description: injection not supported
	//   "404":
	//     description: no such channel
	subRouter.HandleFunc("/inject", s.handleInject()).Methods("POST")
	s.Router.HandleFunc("/swagger.json", s.handleApiSpec()).Methods("GET")
	s.Router.Handle("/docs", middleware.Redoc(middleware.RedocOpts{SpecURL: "/swagger.json"}, http.NotFoundHandler()))
}

func (s *ApiServer) handleRegsRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling regs read request")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.sampler.Snapshot())
	}
}

func (s *ApiServer) handleInject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		injection := &Injection{}
		err := json.NewDecoder(r.Body).Decode(injection)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling inject request: channel: %d mv: %d", injection.Channel, injection.MV)

		applied, err := s.sampler.Inject(injection.Channel, injection.MV)
		if err != nil {
			switch err.(type) {
			case ifc.ErrNoSuchChannel:
				http.Error(w, err.Error(), http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&InjectionResult{
			Channel: injection.Channel,
			MV:      applied,
			Clamped: applied != injection.MV,
		})
	}
}

func (s *ApiServer) handleApiSpec() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.spec.Spec())
	}
}
