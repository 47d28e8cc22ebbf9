package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// singleFlightRouter serves a POST that blocks until released, so a second
// request can arrive while the first is in flight.
func singleFlightRouter(userID func(*gin.Context) uint, started chan<- struct{}, release <-chan struct{}) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(userIDKey, userID(c))
		c.Next()
	})
	r.Use(SingleFlight())
	r.POST("/developers", func(c *gin.Context) {
		started <- struct{}{}
		<-release
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	r.GET("/developers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func TestSingleFlight_DuplicateWriteRejected(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	r := singleFlightRouter(func(*gin.Context) uint { return 7 }, started, release)

	first := httptest.NewRecorder()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/developers", http.NoBody))
	}()
	<-started

	// Same user, same route, while the first request is still in flight.
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/developers", http.NoBody))
	if second.Code != http.StatusConflict {
		t.Errorf("expected 409 for the duplicate write, got %d: %s", second.Code, second.Body.String())
	}

	close(release)
	wg.Wait()
	if first.Code != http.StatusOK {
		t.Errorf("expected the first write to succeed, got %d", first.Code)
	}

	// The route is free again once the winner finished; release stays
	// closed so the handler returns immediately.
	third := httptest.NewRecorder()
	r.ServeHTTP(third, httptest.NewRequest(http.MethodPost, "/developers", http.NoBody))
	if third.Code != http.StatusOK {
		t.Errorf("expected a fresh write after completion, got %d", third.Code)
	}
}

func TestSingleFlight_DistinctUsersDoNotContend(t *testing.T) {
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	next := uint(0)
	var mu sync.Mutex
	r := singleFlightRouter(func(*gin.Context) uint {
		mu.Lock()
		defer mu.Unlock()
		next++
		return next
	}, started, release)

	recs := []*httptest.ResponseRecorder{httptest.NewRecorder(), httptest.NewRecorder()}
	var wg sync.WaitGroup
	for _, rec := range recs {
		wg.Add(1)
		go func(rec *httptest.ResponseRecorder) {
			defer wg.Done()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/developers", http.NoBody))
		}(rec)
	}
	<-started
	<-started
	close(release)
	wg.Wait()

	for i, rec := range recs {
		if rec.Code != http.StatusOK {
			t.Errorf("request %d: expected 200 for distinct users, got %d", i, rec.Code)
		}
	}
}

func TestSingleFlight_ReadsPassThrough(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	close(release)
	r := singleFlightRouter(func(*gin.Context) uint { return 7 }, started, release)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/developers", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Errorf("expected reads to bypass the guard, got %d", rec.Code)
	}
}
