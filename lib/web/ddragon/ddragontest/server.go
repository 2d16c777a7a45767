// Package ddragontest serves a small Data Dragon catalog for tests.
package ddragontest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

const Version = "15.22.1"

const itemsJSON = `{"type":"item","version":"15.22.1","data":{
	"1056":{"name":"Doran's Ring"},
	"6653":{"name":"Liandry's Torment"},
	"3020":{"name":"Sorcerer's Shoes"},
	"2503":{"name":"Blackfire Torch"},
	"3116":{"name":"Rylai's Crystal Scepter"},
	"1001":{"name":"Boots"},
	"3340":{"name":"Stealth Ward"}
}}`

const runesJSON = `[
	{"id":8200,"key":"Sorcery","name":"Sorcery","slots":[
		{"runes":[{"id":8214,"key":"SummonAery","name":"Summon Aery"},{"id":8229,"key":"ArcaneComet","name":"Arcane Comet"}]},
		{"runes":[{"id":8226,"key":"ManaflowBand","name":"Manaflow Band"}]},
		{"runes":[{"id":8210,"key":"Transcendence","name":"Transcendence"}]},
		{"runes":[{"id":8236,"key":"GatheringStorm","name":"Gathering Storm"}]}
	]},
	{"id":8300,"key":"Inspiration","name":"Inspiration","slots":[
		{"runes":[{"id":8369,"key":"FirstStrike","name":"First Strike"}]},
		{"runes":[{"id":8304,"key":"MagicalFootwear","name":"Magical Footwear"}]},
		{"runes":[{"id":8345,"key":"BiscuitDelivery","name":"Biscuit Delivery"}]}
	]}
]`

// Server is a fake Data Dragon CDN
type Server struct {
	*httptest.Server
	VersionHits atomic.Int32
	ItemHits    atomic.Int32
	RuneHits    atomic.Int32
	// Fail makes every request answer 503 while set
	Fail atomic.Bool

	gate atomic.Pointer[chan struct{}]
}

// Stall holds every request until release is called
func (s *Server) Stall() (release func()) {
	gate := make(chan struct{})
	s.gate.Store(&gate)
	var once sync.Once
	return func() {
		once.Do(func() {
			s.gate.Store(nil)
			close(gate)
		})
	}
}

func (s *Server) hold(r *http.Request) {
	gate := s.gate.Load()
	if gate == nil {
		return
	}
	select {
	case <-*gate:
	case <-r.Context().Done():
	}
}

func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		s.VersionHits.Add(1)
		s.hold(r)
		if s.Fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, `[%q,"15.21.1"]`, Version)
	})
	mux.HandleFunc("/cdn/"+Version+"/data/en_US/item.json", func(w http.ResponseWriter, r *http.Request) {
		s.ItemHits.Add(1)
		s.hold(r)
		if s.Fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(itemsJSON))
	})
	mux.HandleFunc("/cdn/"+Version+"/data/en_US/runesReforged.json", func(w http.ResponseWriter, r *http.Request) {
		s.RuneHits.Add(1)
		s.hold(r)
		if s.Fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(runesJSON))
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}
