package morphology

import (
	"encoding/json"
	"testing"

	"go.viam.com/test"
)

func TestOperation(t *testing.T) {
	for _, op := range []Operation{Dilate, Erode, Open, Close} {
		parsed, err := ParseOperation(op.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, op)
	}
	parsed, err := ParseOperation("ERODE")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed, test.ShouldEqual, Erode)

	_, err = ParseOperation("thin")
	test.That(t, err, test.ShouldBeError, `unknown morphology operation "thin"`)
	test.That(t, Operation(42).String(), test.ShouldEqual, "unknown")

	test.That(t, Dilate.DefaultBoundaryToForeground(), test.ShouldBeFalse)
	test.That(t, Erode.DefaultBoundaryToForeground(), test.ShouldBeTrue)
	test.That(t, Open.stages(), test.ShouldResemble, []Operation{Erode, Dilate})
	test.That(t, Close.stages(), test.ShouldResemble, []Operation{Dilate, Erode})
}

func TestOperationJSON(t *testing.T) {
	var holder struct {
		Op Operation `json:"op"`
	}
	test.That(t, json.Unmarshal([]byte(`{"op":"close"}`), &holder), test.ShouldBeNil)
	test.That(t, holder.Op, test.ShouldEqual, Close)

	out, err := json.Marshal(holder)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `{"op":"close"}`)

	err = json.Unmarshal([]byte(`{"op":"blur"}`), &holder)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown morphology operation")
}

func TestBoundaryPolicy(t *testing.T) {
	test.That(t, BoundaryDefault.ToForeground(Dilate), test.ShouldBeFalse)
	test.That(t, BoundaryDefault.ToForeground(Erode), test.ShouldBeTrue)
	for _, op := range []Operation{Dilate, Erode} {
		test.That(t, BoundaryForeground.ToForeground(op), test.ShouldBeTrue)
		test.That(t, BoundaryBackground.ToForeground(op), test.ShouldBeFalse)
	}
	test.That(t, BoundaryPolicyFromBool(true), test.ShouldEqual, BoundaryForeground)
	test.That(t, BoundaryPolicyFromBool(false), test.ShouldEqual, BoundaryBackground)
	test.That(t, BoundaryDefault.String(), test.ShouldEqual, "default")
}
