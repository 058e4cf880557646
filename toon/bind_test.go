package toon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================
// Reflective Binder Tests
// ============================================================

type hike struct {
	ID         int     `toon:"id"`
	Name       string  `toon:"name"`
	DistanceKm float64 `toon:"distanceKm"`
	Sunny      bool    `toon:"sunny"`
	Companion  *string `toon:"companion"`
	Rating     int     `toon:"rating,default"`
	Note       string  `toon:"note,omitempty"`
}

func TestBind_Struct(t *testing.T) {
	src := "id: 7\nname: Chautauqua\ndistanceKm: 5.4\nsunny: true"

	out := hike{Rating: 3}
	require.NoError(t, UnmarshalInto(src, &out))
	require.Equal(t, 7, out.ID)
	require.Equal(t, "Chautauqua", out.Name)
	require.Equal(t, 5.4, out.DistanceKm)
	require.True(t, out.Sunny)
	require.Nil(t, out.Companion)   // optional pointer, absent
	require.Equal(t, 3, out.Rating) // default flag keeps pre-set value
	require.Equal(t, "", out.Note)  // omitempty, absent
}

func TestBind_OptionalNull(t *testing.T) {
	src := "id: 1\nname: x\ndistanceKm: 2\nsunny: false\ncompanion: null"
	var out hike
	require.NoError(t, UnmarshalInto(src, &out))
	require.Nil(t, out.Companion)
}

func TestBind_OptionalPresent(t *testing.T) {
	src := "id: 1\nname: x\ndistanceKm: 2\nsunny: false\ncompanion: ana"
	var out hike
	require.NoError(t, UnmarshalInto(src, &out))
	require.NotNil(t, out.Companion)
	require.Equal(t, "ana", *out.Companion)
}

func TestBind_MissingField(t *testing.T) {
	var out hike
	err := UnmarshalInto("id: 1", &out)
	require.Error(t, err)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ErrMissingField, derr.Kind)
}

func TestBind_TruncatesTowardZero(t *testing.T) {
	var out struct {
		A int `toon:"a"`
		B int `toon:"b"`
	}
	require.NoError(t, UnmarshalInto("a: 3.9\nb: -3.9", &out))
	require.Equal(t, 3, out.A)
	require.Equal(t, -3, out.B)
}

func TestBind_TypeMismatch(t *testing.T) {
	var out struct {
		A int `toon:"a"`
	}
	err := UnmarshalInto("a: hello", &out)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ErrTypeMismatch, derr.Kind)
}

func TestBind_Sequences(t *testing.T) {
	var slice []int
	require.NoError(t, UnmarshalInto("[3]: 1,2,3", &slice))
	require.Equal(t, []int{1, 2, 3}, slice)

	var arr [2]string
	require.NoError(t, UnmarshalInto("[2]: a,b", &arr))
	require.Equal(t, [2]string{"a", "b"}, arr)

	var wrong [3]string
	err := UnmarshalInto("[2]: a,b", &wrong)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ErrArraySizeMismatch, derr.Kind)
}

func TestBind_StructRows(t *testing.T) {
	type row struct {
		ID   int    `toon:"id"`
		Name string `toon:"name"`
	}
	var rows []row
	require.NoError(t, UnmarshalInto("[2]{id,name}:\n  1,Alice\n  2,Bob", &rows))
	require.Equal(t, []row{{1, "Alice"}, {2, "Bob"}}, rows)
}

func TestBind_Map(t *testing.T) {
	var m map[string]float64
	require.NoError(t, UnmarshalInto("a: 1\nb: 2.5", &m))
	require.Equal(t, map[string]float64{"a": 1, "b": 2.5}, m)
}

func TestBind_Interface(t *testing.T) {
	var out any
	require.NoError(t, UnmarshalInto("a: 1\nb[2]: x,y", &out))
	require.Equal(t, map[string]any{
		"a": float64(1),
		"b": []any{"x", "y"},
	}, out)
}

func TestBind_ValueTarget(t *testing.T) {
	var out *Value
	require.NoError(t, UnmarshalInto("a: 1", &out))
	require.True(t, Equal(out, Object(FieldVal("a", Number(1)))))
}

// ------------------------------------------------------------
// Enums
// ------------------------------------------------------------

type season string

func (season) EnumVariants() []string {
	return []string{"spring", "summer", "fall", "winter"}
}

func TestBind_Enum(t *testing.T) {
	var out struct {
		When season `toon:"when"`
	}
	require.NoError(t, UnmarshalInto("when: summer", &out))
	require.Equal(t, season("summer"), out.When)

	err := UnmarshalInto("when: monsoon", &out)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ErrInvalidEnumValue, derr.Kind)
}

// ------------------------------------------------------------
// Tagged unions
// ------------------------------------------------------------

type shape struct {
	_      struct{} `toon:",union"`
	Circle *circle  `toon:"circle"`
	Rect   *rect    `toon:"rect"`
}

type circle struct {
	Radius float64 `toon:"radius"`
}

type rect struct {
	W float64 `toon:"w"`
	H float64 `toon:"h"`
}

func TestBind_Union(t *testing.T) {
	var out shape
	require.NoError(t, UnmarshalInto("circle:\n  radius: 2.5", &out))
	require.NotNil(t, out.Circle)
	require.Nil(t, out.Rect)
	require.Equal(t, 2.5, out.Circle.Radius)
}

func TestBind_UnionUnknownTag(t *testing.T) {
	var out shape
	err := UnmarshalInto("triangle:\n  base: 1", &out)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ErrInvalidUnionTag, derr.Kind)
}

func TestBind_UnionRequiresSingleEntry(t *testing.T) {
	var out shape
	err := UnmarshalInto("circle:\n  radius: 1\nrect:\n  w: 1\n  h: 2", &out)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ErrTypeMismatch, derr.Kind)
}

func TestBind_UnsupportedTarget(t *testing.T) {
	var ch chan int
	err := Bind(Number(1), &ch)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ErrTypeMismatch, derr.Kind)
}

func TestBind_NonPointerTarget(t *testing.T) {
	var out hike
	err := Bind(Object(), out)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ErrUnsupportedType, derr.Kind)
}
