package model_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cwrules/internal/model"
)

type LayoutSuite struct {
	suite.Suite
}

func TestLayoutSuite(t *testing.T) {
	suite.Run(t, new(LayoutSuite))
}

func (s *LayoutSuite) TestStandardLayout() {
	l := model.StandardLayout
	s.Equal(15, l.Dim())
	s.Equal(model.Position{Row: 7, Col: 7}, l.Center())
	s.Equal(model.TripleWord, l.At(0, 0))
	s.Equal(model.TripleWord, l.At(14, 14))
	s.Equal(model.DoubleLetter, l.At(0, 3))
	s.Equal(model.DoubleWord, l.At(1, 1))
	s.Equal(model.TripleLetter, l.At(1, 5))
	s.Equal(model.DoubleWord, l.At(7, 7))
	s.Equal(model.NoBonus, l.At(0, 1))
	s.Equal(model.NoBonus, l.At(-1, 3))
}

func (s *LayoutSuite) TestSuperLayout() {
	l := model.SuperLayout
	s.Equal(21, l.Dim())
	s.Equal(model.Position{Row: 10, Col: 10}, l.Center())
	s.Equal(model.QuadrupleWord, l.At(0, 0))
	s.Equal(model.QuadrupleWord, l.At(20, 20))
	s.Equal(model.QuadrupleLetter, l.At(2, 5))
	s.Equal(model.DoubleWord, l.At(10, 10))
}

func (s *LayoutSuite) TestLayoutIsSymmetric() {
	for _, l := range []*model.Layout{model.StandardLayout, model.SuperLayout} {
		dim := l.Dim()
		for r := 0; r < dim; r++ {
			for c := 0; c < dim; c++ {
				s.Equal(l.At(r, c), l.At(dim-1-r, c), "%s (%d, %d)", l.Name(), r, c)
				s.Equal(l.At(r, c), l.At(r, dim-1-c), "%s (%d, %d)", l.Name(), r, c)
			}
		}
	}
}

func (s *LayoutSuite) TestMultipliers() {
	s.Equal(4, model.QuadrupleLetter.LetterMultiplier())
	s.Equal(1, model.QuadrupleLetter.WordMultiplier())
	s.Equal(3, model.TripleWord.WordMultiplier())
	s.Equal(1, model.StartingSquare.WordMultiplier())
	s.Equal(1, model.StartingSquare.LetterMultiplier())
	s.Equal("=", model.TripleWord.String())
}

func (s *LayoutSuite) TestParseLayoutErrors() {
	_, err := model.ParseLayout("empty", nil)
	s.ErrorIs(err, model.ErrInvalidLayout)

	_, err = model.ParseLayout("ragged", []string{"  ", " "})
	s.ErrorIs(err, model.ErrInvalidLayout)

	_, err = model.ParseLayout("unknown", []string{"x ", "  "})
	s.ErrorIs(err, model.ErrInvalidLayout)

	l, err := model.ParseLayout("tiny", []string{"*-", "'="})
	s.Require().NoError(err)
	s.Equal(model.StartingSquare, l.At(0, 0))
	s.Equal(model.TripleWord, l.At(1, 1))
}

func (s *LayoutSuite) TestLayoutByName() {
	l, err := model.LayoutByName("")
	s.Require().NoError(err)
	s.Same(model.StandardLayout, l)

	l, err = model.LayoutByName("SUPER")
	s.Require().NoError(err)
	s.Same(model.SuperLayout, l)

	_, err = model.LayoutByName("giant")
	s.ErrorIs(err, model.ErrUnknownLayout)
}
