package domain

import (
	"github.com/shopspring/decimal"
)

// Kind discriminates the value stored in a SlotValue.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindDecimal
	KindStringList
	KindTimePoint
	KindInterval
	KindCards
	KindHistory
	KindProfile
)

// SlotValue is the tagged union stored under one slot name. A zero SlotValue
// is absent; validators must construct values through the typed constructors
// so downstream consumers never see an unexpected shape.
type SlotValue struct {
	kind    Kind
	str     string
	dec     decimal.Decimal
	list    []string
	point   TimePoint
	span    Interval
	cards   Cards
	history TransactionHistory
	profile UserProfile
}

// Absent is the cleared slot value.
var Absent = SlotValue{}

func String(s string) SlotValue          { return SlotValue{kind: KindString, str: s} }
func Decimal(d decimal.Decimal) SlotValue {
	return SlotValue{kind: KindDecimal, dec: d}
}
func StringList(l []string) SlotValue    { return SlotValue{kind: KindStringList, list: l} }
func Point(p TimePoint) SlotValue        { return SlotValue{kind: KindTimePoint, point: p} }
func Span(i Interval) SlotValue          { return SlotValue{kind: KindInterval, span: i} }
func CardsValue(c Cards) SlotValue       { return SlotValue{kind: KindCards, cards: c} }
func HistoryValue(h TransactionHistory) SlotValue {
	return SlotValue{kind: KindHistory, history: h}
}
func ProfileValue(p UserProfile) SlotValue {
	return SlotValue{kind: KindProfile, profile: p}
}

// Kind reports which variant the value holds.
func (v SlotValue) Kind() Kind { return v.kind }

// IsAbsent reports whether the slot is unset or cleared.
func (v SlotValue) IsAbsent() bool { return v.kind == KindAbsent }

func (v SlotValue) String() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Decimal returns the numeric value. String slots that hold a formatted
// number ("450.00") coerce, because executors write balances back as
// display strings.
func (v SlotValue) Decimal() (decimal.Decimal, bool) {
	switch v.kind {
	case KindDecimal:
		return v.dec, true
	case KindString:
		d, err := decimal.NewFromString(v.str)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

func (v SlotValue) StringList() ([]string, bool) {
	if v.kind != KindStringList {
		return nil, false
	}
	return v.list, true
}

func (v SlotValue) TimePoint() (TimePoint, bool) {
	if v.kind != KindTimePoint {
		return TimePoint{}, false
	}
	return v.point, true
}

func (v SlotValue) Interval() (Interval, bool) {
	if v.kind != KindInterval {
		return Interval{}, false
	}
	return v.span, true
}

func (v SlotValue) Cards() (Cards, bool) {
	if v.kind != KindCards {
		return nil, false
	}
	return v.cards, true
}

func (v SlotValue) History() (TransactionHistory, bool) {
	if v.kind != KindHistory {
		return nil, false
	}
	return v.history, true
}

func (v SlotValue) Profile() (UserProfile, bool) {
	if v.kind != KindProfile {
		return UserProfile{}, false
	}
	return v.profile, true
}

// Snapshot is the read-only view of all slot values for one call. The
// dialogue engine owns the authoritative copy; handlers only read it and
// return slot-set events.
type Snapshot map[string]SlotValue

// Get returns the value for a slot, Absent when unset.
func (s Snapshot) Get(name string) SlotValue {
	return s[name]
}

func (s Snapshot) String(name string) (string, bool) {
	return s[name].String()
}

func (s Snapshot) Decimal(name string) (decimal.Decimal, bool) {
	return s[name].Decimal()
}

func (s Snapshot) StringList(name string) ([]string, bool) {
	return s[name].StringList()
}

func (s Snapshot) Cards(name string) (Cards, bool) {
	return s[name].Cards()
}

func (s Snapshot) History(name string) (TransactionHistory, bool) {
	return s[name].History()
}
