package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "validation", err: Validationf("title is required"), want: KindValidation},
		{name: "not found", err: NotFoundf("item %s not found", "x"), want: KindNotFound},
		{name: "conflict", err: Conflictf("concurrent review"), want: KindConflict},
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
		{name: "wrapped", err: fmt.Errorf("loading item: %w", NotFoundf("gone")), want: KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFoundf("gone")))
	assert.False(t, IsNotFound(Validationf("bad")))
	assert.True(t, IsValidation(Validationf("bad")))
	assert.True(t, IsConflict(Conflictf("race")))
	assert.False(t, IsConflict(errors.New("boom")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validationf("bad")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundf("gone")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflictf("race")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestMessageSurfaces(t *testing.T) {
	err := NotFoundf("learning item with ID %s not found", "abc")
	assert.Equal(t, "learning item with ID abc not found", err.Error())
}
