package catalog

import (
	"net/url"
	"reflect"
	"testing"
)

func TestFiltersQuery(t *testing.T) {
	cases := []struct {
		name string
		in   Filters
		want url.Values
	}{
		{
			name: "default pins recognized",
			in:   Filters{},
			want: url.Values{"status": {"recognized"}},
		},
		{
			name: "investigating drops the status constraint",
			in:   Filters{ShowInvestigating: true},
			want: url.Values{},
		},
		{
			name: "all fields set",
			in:   Filters{Search: "lanciano", Country: "Itália", Century: "VIII"},
			want: url.Values{
				"search":  {"lanciano"},
				"country": {"Itália"},
				"century": {"VIII"},
				"status":  {"recognized"},
			},
		},
		{
			name: "whitespace-only values are omitted",
			in:   Filters{Search: "   ", Country: "\t", ShowInvestigating: true},
			want: url.Values{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Query()
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Query() = %v, want %v", got, tc.want)
			}
			// the mapping is pure: calling again must give the same values
			if again := tc.in.Query(); !reflect.DeepEqual(again, got) {
				t.Fatalf("Query() not stable: %v then %v", got, again)
			}
		})
	}
}

func TestFiltersPageQueryRoundTrip(t *testing.T) {
	f := Filters{Search: "santarém", Country: "Portugal", Century: "XIII", ShowInvestigating: true}
	got := FiltersFromQuery(f.PageQuery())
	if got != f {
		t.Fatalf("round trip = %+v, want %+v", got, f)
	}

	if got := FiltersFromQuery(url.Values{"investigating": {"0"}}); got.ShowInvestigating {
		t.Fatal("investigating=0 should not enable the toggle")
	}
}

func TestFilterStoreNotifiesEveryMutation(t *testing.T) {
	store := NewFilterStore(Filters{})

	var events []Filters
	store.Subscribe(func(f Filters) { events = append(events, f) })

	store.SetSearch("lanciano")
	store.SetCountry("Itália")
	store.SetShowInvestigating(true)
	store.SetSearch("")

	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	if events[0].Search != "lanciano" {
		t.Errorf("first event search = %q", events[0].Search)
	}
	if !events[2].ShowInvestigating || events[2].Country != "Itália" {
		t.Errorf("third event should accumulate state, got %+v", events[2])
	}
	if events[3].Search != "" || events[3].Country != "Itália" {
		t.Errorf("clearing search must keep other fields, got %+v", events[3])
	}

	if cur := store.Current(); cur != events[3] {
		t.Errorf("Current() = %+v, want last snapshot %+v", cur, events[3])
	}
}

func TestFilterStoreLateSubscriberSeesNothing(t *testing.T) {
	store := NewFilterStore(Filters{Search: "seed"})
	fired := false
	store.Subscribe(func(Filters) { fired = true })
	if fired {
		t.Fatal("subscribing must not replay the current state")
	}
}
