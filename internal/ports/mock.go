package ports

import (
	"image"

	"github.com/cristianoliveira/docview/internal/toc"
	"github.com/stretchr/testify/mock"
)

// MockRenderer is a testify mock of Renderer.
//
// Example usage:
//
//	r := new(MockRenderer)
//	r.On("RequestRepaint", mock.Anything).Return()
//	...
//	r.AssertNumberOfCalls(t, "RequestRepaint", 2)
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RequestRepaint(region *image.Rectangle) { m.Called(region) }
func (m *MockRenderer) RequestRendering(pageNo int)           { m.Called(pageNo) }
func (m *MockRenderer) UpdateScrollbars(canvas image.Point)   { m.Called(canvas) }
func (m *MockRenderer) PageNoChanged(pageNo int)              { m.Called(pageNo) }
func (m *MockRenderer) CleanUp()                              { m.Called() }

// NewPermissiveRenderer returns a MockRenderer that accepts every call.
func NewPermissiveRenderer() *MockRenderer {
	r := new(MockRenderer)
	r.On("RequestRepaint", mock.Anything).Return().Maybe()
	r.On("RequestRendering", mock.Anything).Return().Maybe()
	r.On("UpdateScrollbars", mock.Anything).Return().Maybe()
	r.On("PageNoChanged", mock.Anything).Return().Maybe()
	r.On("CleanUp").Return().Maybe()
	return r
}

// MockNavigationSink is a testify mock of NavigationSink.
type MockNavigationSink struct {
	mock.Mock
}

// Navigate records the target. Configure with:
//
//	sink.On("Navigate", toc.Target{Page: 2}).Return(nil)
func (m *MockNavigationSink) Navigate(target toc.Target) error {
	args := m.Called(target)
	return args.Error(0)
}

// OpenExternal records the locator.
func (m *MockNavigationSink) OpenExternal(locator string) error {
	args := m.Called(locator)
	return args.Error(0)
}

// CurrentPage returns the configured page.
func (m *MockNavigationSink) CurrentPage() int {
	args := m.Called()
	return args.Int(0)
}

// MockLayout is a testify mock of Layout.
type MockLayout struct {
	mock.Mock
}

func (m *MockLayout) ScrollBy(dx, dy int) { m.Called(dx, dy) }

func (m *MockLayout) LinkAt(pt image.Point) (*toc.Destination, bool) {
	args := m.Called(pt)
	dest, _ := args.Get(0).(*toc.Destination)
	return dest, args.Bool(1)
}

func (m *MockLayout) OverText(pt image.Point) bool {
	args := m.Called(pt)
	return args.Bool(0)
}

func (m *MockLayout) PageVisible(pageNo int) bool {
	args := m.Called(pageNo)
	return args.Bool(0)
}
