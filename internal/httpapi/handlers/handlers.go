/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fortuneworks/fortune/pkg/fortune"
	"github.com/fortuneworks/fortune/pkg/service"
)

type Handlers struct {
	svc *service.Service
}

func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// ListFortunes returns every fortune currently in the store.
func (h *Handlers) ListFortunes(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List(c.Request.Context()))
}

// GetFortune returns the fortune for the id in the path, preferring a cache
// hit over the stored value.
func (h *Handlers) GetFortune(c *gin.Context) {
	id := c.Param("id")
	f, ok := h.svc.Get(c.Request.Context(), id)
	if !ok {
		c.JSON(http.StatusNotFound, "fortune not found")
		return
	}
	c.JSON(http.StatusOK, f)
}

// RandomFortune returns a uniformly chosen fortune, or 404 when the store
// is empty.
func (h *Handlers) RandomFortune(c *gin.Context) {
	f, ok := h.svc.Random(c.Request.Context())
	if !ok {
		c.JSON(http.StatusNotFound, "fortune not found")
		return
	}
	c.JSON(http.StatusOK, f)
}

// CreateFortune stores the posted fortune, writing through to the cache
// best-effort. Malformed or incomplete bodies are a client error; a cache
// failure is not.
func (h *Handlers) CreateFortune(c *gin.Context) {
	var f fortune.Fortune
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, "invalid request body")
		return
	}
	if f.ID == "" || f.Message == "" {
		c.JSON(http.StatusBadRequest, "invalid request body")
		return
	}
	c.JSON(http.StatusOK, h.svc.Create(c.Request.Context(), f))
}
