package remote

import "testing"

func TestRouter_DispatchesRegisteredType(t *testing.T) {
	r := NewRouter(nil)
	var got Envelope
	r.Handle("greet", func(e Envelope) (*Envelope, error) {
		got = e
		return nil, nil
	})

	r.Dispatch(Envelope{MessageType: "greet", Payload: []byte("hi")})

	if got.MessageType != "greet" {
		t.Fatalf("handler did not receive dispatched envelope: %+v", got)
	}
}

func TestRouter_FallsThroughToDefault(t *testing.T) {
	r := NewRouter(nil)
	called := false
	r.SetDefault(func(e Envelope) (*Envelope, error) {
		called = true
		return nil, nil
	})

	r.Dispatch(Envelope{MessageType: "unknown"})

	if !called {
		t.Fatal("default handler was not invoked for an unregistered type")
	}
}

func TestRouter_UnregisteredWithNoDefault_IsDroppedNotPanicked(t *testing.T) {
	r := NewRouter(nil)
	r.Dispatch(Envelope{MessageType: "nobody-home"}) // must not panic
}

func TestTypeRegistry_LookupAndDecode(t *testing.T) {
	reg := NewTypeRegistry()
	reg.Register("test::Ping", func(payload []byte) (interface{}, error) {
		return string(payload), nil
	})

	if _, ok := reg.Lookup("nope"); ok {
		t.Fatal("Lookup found a decoder for an unregistered type")
	}

	v, err := reg.Decode(Envelope{MessageType: "test::Ping", Payload: []byte("hi")})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v != "hi" {
		t.Fatalf("Decode = %v, want %q", v, "hi")
	}

	if _, err := reg.Decode(Envelope{MessageType: "missing"}); err == nil {
		t.Fatal("Decode succeeded for an unregistered type")
	}
}
