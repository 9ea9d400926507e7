// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of DETCOUNT.
//
//  DETCOUNT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  DETCOUNT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with DETCOUNT.  If not, see <https://www.gnu.org/licenses/>.

package corpus

// HeadMode specifies how a token's head is found within its sentence.
type HeadMode int

const (

	// HeadByIndex means Token.Head is an index (1-based) into
	// the sentence token list.
	HeadByIndex HeadMode = iota

	// HeadByPendingID means heads are matched by id strings while
	// scanning the tokens in textual order (line based formats).
	HeadByPendingID
)

func (hm HeadMode) String() string {
	switch hm {
	case HeadByIndex:
		return "index"
	case HeadByPendingID:
		return "pendingID"
	}
	return "unknown"
}

// Token is a single parsed token. Positions are 1-based and
// local to a sentence.
type Token struct {
	Position  int
	ID        string
	Form      string
	Lemma     string
	CoarsePOS string
	FinePOS   string

	// Head is a 1-based position of the governing token,
	// 0 means there is no head (root).
	Head int

	// HeadID is the raw head reference as found in the data
	HeadID string
}

// Sentence is an ordered sequence of tokens. A sentence is
// not supposed to be retained once processed.
type Sentence struct {
	Tokens   []Token
	HeadMode HeadMode

	// Source is a file the sentence has been read from
	Source string

	// Line is a line number of the sentence start (0 if unknown)
	Line int
}

func (s *Sentence) Len() int {
	return len(s.Tokens)
}

// HeadOf returns the head of the i-th token (0-based index) resolved
// by its position. Nil is returned for root tokens and out of range
// references.
func (s *Sentence) HeadOf(i int) *Token {
	if i < 0 || i >= len(s.Tokens) {
		return nil
	}
	h := s.Tokens[i].Head
	if h < 1 || h > len(s.Tokens) {
		return nil
	}
	return &s.Tokens[h-1]
}

func (s *Sentence) addToken(tok Token) {
	tok.Position = len(s.Tokens) + 1
	s.Tokens = append(s.Tokens, tok)
}
