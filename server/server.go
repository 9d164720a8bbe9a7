// Package server exposes an mlp.Network over HTTP. Train requests take the
// write lock; Query and Predict share the read lock, so a query never
// observes a half-applied update.
package server

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mlpnet/mlp"
	"mlpnet/utils"
)

type Server struct {
	ID     uuid.UUID
	Router *gin.Engine

	mu  sync.RWMutex
	net *mlp.Network
}

type ModelInfo struct {
	ID           string  `json:"id"`
	Topology     []int   `json:"topology"`
	LearningRate float64 `json:"learning_rate"`
	Activator    string  `json:"activator"`
}

type QueryRequest struct {
	Input []float64 `json:"input" binding:"required"`
}

type QueryResponse struct {
	Output []float64 `json:"output"`
}

type PredictResponse struct {
	Class int `json:"class"`
}

type TrainRequest struct {
	Input    []float64 `json:"input" binding:"required"`
	Expected []float64 `json:"expected" binding:"required"`
}

// New wraps net. The caller must not use net directly afterwards.
func New(net *mlp.Network) *Server {
	s := &Server{
		ID:     uuid.New(),
		Router: gin.Default(),
		net:    net,
	}
	s.Router.GET("/model", s.handleModel)
	s.Router.POST("/query", s.handleQuery)
	s.Router.POST("/predict", s.handlePredict)
	s.Router.POST("/train", s.handleTrain)
	return s
}

func (s *Server) Run(addr string) error {
	utils.Logf("model %s listening on %s", s.ID, addr)
	return s.Router.Run(addr)
}

func (s *Server) handleModel(c *gin.Context) {
	// topology and learning rate never change, no lock needed
	c.JSON(http.StatusOK, ModelInfo{
		ID:           s.ID.String(),
		Topology:     s.net.Topology(),
		LearningRate: s.net.LearningRate(),
		Activator:    s.net.Activator().String(),
	})
}

func (s *Server) handleQuery(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.RLock()
	out, err := s.net.Query(req.Input)
	s.mu.RUnlock()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, QueryResponse{Output: out})
}

func (s *Server) handlePredict(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.RLock()
	class, err := s.net.Predict(req.Input)
	s.mu.RUnlock()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, PredictResponse{Class: class})
}

func (s *Server) handleTrain(c *gin.Context) {
	var req TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	err := s.net.Train(req.Input, req.Expected)
	s.mu.Unlock()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, mlp.ErrShapeMismatch) {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
