package module

import (
	"strings"
	"testing"

	phttp "scanwedge/internal/platform/net/http"
)

type pinger interface{ Ping() error }

type catalogStub struct{}

func (catalogStub) Ping() error { return nil }

type scannerPorts struct {
	Sessions int
	Catalog  pinger
	hidden   pinger
}

type fake struct{ ports any }

func (f fake) Name() string             { return "scanner" }
func (f fake) Ports() any               { return f.ports }
func (f fake) MountRoutes(phttp.Router) {}

func TestPortsOf(t *testing.T) {
	bundle := scannerPorts{Sessions: 3, Catalog: catalogStub{}}

	if got, ok := PortsOf[scannerPorts](fake{bundle}); !ok || got.Sessions != 3 {
		t.Fatalf("direct = %+v %v", got, ok)
	}
	if _, ok := PortsOf[pinger](fake{bundle}); !ok {
		t.Fatal("field lookup failed")
	}
	if _, ok := PortsOf[pinger](fake{&bundle}); !ok {
		t.Fatal("pointer bundle lookup failed")
	}
	if _, ok := PortsOf[pinger](fake{scannerPorts{hidden: catalogStub{}}}); ok {
		t.Fatal("unexported field leaked")
	}
	if _, ok := PortsOf[pinger](fake{nil}); ok {
		t.Fatal("nil ports matched")
	}
	if _, ok := PortsOf[pinger](fake{(*scannerPorts)(nil)}); ok {
		t.Fatal("nil pointer matched")
	}
	if _, ok := PortsOf[pinger](fake{42}); ok {
		t.Fatal("scalar matched")
	}
}

func TestMustPortsOf_Panics(t *testing.T) {
	defer func() {
		r := recover()
		msg, _ := r.(string)
		if !strings.Contains(msg, "scanner") {
			t.Fatalf("panic = %v", r)
		}
	}()
	MustPortsOf[pinger](fake{nil})
}
