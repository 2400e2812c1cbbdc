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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-sampler/pkg/config"
	"jinr.ru/greenlab/go-sampler/pkg/regfile"
	"jinr.ru/greenlab/go-sampler/pkg/srv"
	samplersrv "jinr.ru/greenlab/go-sampler/pkg/srv/sampler"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.IP, srv.ApiPort),
	}
}

// RegsRead sends a request to get the register file snapshot
func (c *ApiClient) RegsRead() (*regfile.Snapshot, error) {
	r, err := req.Get(fmt.Sprintf("%s/regs", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	snapshot := &regfile.Snapshot{}
	err = r.ToJSON(snapshot)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Inject sends a request to inject a value into a channel of the simulated source
func (c *ApiClient) Inject(channel int, mv int32) (*samplersrv.InjectionResult, error) {
	injection := &samplersrv.Injection{
		Channel: channel,
		MV:      mv,
	}
	r, err := req.Post(fmt.Sprintf("%s/inject", c.ApiPrefix), req.BodyJSON(injection))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	result := &samplersrv.InjectionResult{}
	err = r.ToJSON(result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
