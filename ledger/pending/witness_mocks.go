// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package pending is a generated GoMock package.
package pending

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	smt "github.com/jithinraj/coinstack/ledger/smt"
	stack "github.com/jithinraj/coinstack/ledger/stack"
)

// MockWitness is a mock of Witness interface.
type MockWitness struct {
	ctrl     *gomock.Controller
	recorder *MockWitnessMockRecorder
	isgomock struct{}
}

// MockWitnessMockRecorder is the mock recorder for MockWitness.
type MockWitnessMockRecorder struct {
	mock *MockWitness
}

// NewMockWitness creates a new mock instance.
func NewMockWitness(ctrl *gomock.Controller) *MockWitness {
	mock := &MockWitness{ctrl: ctrl}
	mock.recorder = &MockWitnessMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockWitness) EXPECT() *MockWitnessMockRecorder {
	return m.recorder
}

// NewestIndex mocks base method.
func (m *MockWitness) NewestIndex() (Index, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "NewestIndex")
	ret0, _ := ret[0].(Index)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// NewestIndex indicates an expected call of NewestIndex.
func (mr *MockWitnessMockRecorder) NewestIndex() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewestIndex", reflect.TypeOf((*MockWitness)(nil).NewestIndex))
}

// OldestIndex mocks base method.
func (m *MockWitness) OldestIndex() (Index, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OldestIndex")
	ret0, _ := ret[0].(Index)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// OldestIndex indicates an expected call of OldestIndex.
func (mr *MockWitnessMockRecorder) OldestIndex() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OldestIndex", reflect.TypeOf((*MockWitness)(nil).OldestIndex))
}

// PathFor mocks base method.
func (m *MockWitness) PathFor(index Index) (smt.Path, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PathFor", index)
	ret0, _ := ret[0].(smt.Path)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PathFor indicates an expected call of PathFor.
func (mr *MockWitnessMockRecorder) PathFor(index any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PathFor", reflect.TypeOf((*MockWitness)(nil).PathFor), index)
}

// ReadSlot mocks base method.
func (m *MockWitness) ReadSlot(index Index) (stack.Stack, smt.Path, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReadSlot", index)
	ret0, _ := ret[0].(stack.Stack)
	ret1, _ := ret[1].(smt.Path)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ReadSlot indicates an expected call of ReadSlot.
func (mr *MockWitnessMockRecorder) ReadSlot(index any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReadSlot", reflect.TypeOf((*MockWitness)(nil).ReadSlot), index)
}

// WriteSlot mocks base method.
func (m *MockWitness) WriteSlot(index Index, value stack.Stack) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WriteSlot", index, value)
	ret0, _ := ret[0].(error)
	return ret0
}

// WriteSlot indicates an expected call of WriteSlot.
func (mr *MockWitnessMockRecorder) WriteSlot(index, value any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WriteSlot", reflect.TypeOf((*MockWitness)(nil).WriteSlot), index, value)
}
