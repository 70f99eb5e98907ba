package errors

import (
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorMessage(t *testing.T) {
	err := New(CodeKeyInvalidType, "unknown key type")
	if err.Error() != "KEY_INVALID_TYPE: unknown key type" {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestGetCodeFromWrappedError(t *testing.T) {
	err := fmt.Errorf("create key: %w", New(CodeKeyNameEmpty, "name is required"))
	if got := GetCode(err); got != CodeKeyNameEmpty {
		t.Fatalf("code = %v, want %v", got, CodeKeyNameEmpty)
	}
}

func TestGetCodeUnknownForPlainError(t *testing.T) {
	if got := GetCode(fmt.Errorf("boom")); got != CodeUnknown {
		t.Fatalf("code = %v, want %v", got, CodeUnknown)
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeNotFound, "missing")
	if !IsCode(err, CodeNotFound) {
		t.Fatal("expected IsCode to match")
	}
	if IsCode(err, CodeAlreadyExists) {
		t.Fatal("expected IsCode mismatch")
	}
}

func TestHandleErrorFormatsMetadata(t *testing.T) {
	err := New(CodeKeyInvalidType, "bad type").WithMetadata(map[string]string{"Type": "tally"})
	st, ok := status.FromError(HandleError(err, ""))
	if !ok {
		t.Fatal("expected grpc status")
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("grpc code = %v, want %v", st.Code(), codes.InvalidArgument)
	}
	if st.Message() != "Unknown campaign key type tally" {
		t.Fatalf("message = %q", st.Message())
	}
}

func TestHandleErrorUnknownErrorIsInternal(t *testing.T) {
	st, ok := status.FromError(HandleError(fmt.Errorf("boom"), ""))
	if !ok {
		t.Fatal("expected grpc status")
	}
	if st.Code() != codes.Internal {
		t.Fatalf("grpc code = %v, want %v", st.Code(), codes.Internal)
	}
}

func TestHandleErrorNil(t *testing.T) {
	if HandleError(nil, "") != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	cases := []struct {
		code Code
		want codes.Code
	}{
		{CodeKeyInvalidType, codes.InvalidArgument},
		{CodeEventKeyMismatch, codes.FailedPrecondition},
		{CodeNotFound, codes.NotFound},
		{CodeAlreadyExists, codes.AlreadyExists},
		{CodeUnknown, codes.Internal},
	}
	for _, tc := range cases {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Fatalf("%s grpc code = %v, want %v", tc.code, got, tc.want)
		}
	}
}
