package mocks

import "github.com/stretchr/testify/mock"

import "net"

type Conn struct {
	mock.Mock
}

// SendTo provides a mock function with given fields: b, addr
func (_m *Conn) SendTo(b []byte, addr *net.UDPAddr) (int, error) {
	ret := _m.Called(b, addr)

	var r0 int
	if rf, ok := ret.Get(0).(func([]byte, *net.UDPAddr) int); ok {
		r0 = rf(b, addr)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func([]byte, *net.UDPAddr) error); ok {
		r1 = rf(b, addr)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RecvFrom provides a mock function with given fields: b
func (_m *Conn) RecvFrom(b []byte) (int, *net.UDPAddr, error) {
	ret := _m.Called(b)

	var r0 int
	if rf, ok := ret.Get(0).(func([]byte) int); ok {
		r0 = rf(b)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 *net.UDPAddr
	if rf, ok := ret.Get(1).(func([]byte) *net.UDPAddr); ok {
		r1 = rf(b)
	} else {
		if ret.Get(1) != nil {
			r1 = ret.Get(1).(*net.UDPAddr)
		}
	}

	var r2 error
	if rf, ok := ret.Get(2).(func([]byte) error); ok {
		r2 = rf(b)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// SetBroadcast provides a mock function with given fields: enable
func (_m *Conn) SetBroadcast(enable bool) error {
	ret := _m.Called(enable)

	var r0 error
	if rf, ok := ret.Get(0).(func(bool) error); ok {
		r0 = rf(enable)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Close provides a mock function with given fields:
func (_m *Conn) Close() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
