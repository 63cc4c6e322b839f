package server

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/structpb"

	viewhandler "bookingdesk/backend/internal/view/handler"
)

// mockServiceRegistrar implements grpc.ServiceRegistrar for testing.
type mockServiceRegistrar struct {
	services []string
}

func (m *mockServiceRegistrar) RegisterService(desc *grpc.ServiceDesc, impl interface{}) {
	m.services = append(m.services, desc.ServiceName)
}

// mockViewServer implements viewhandler.ViewServiceServer.
type mockViewServer struct{}

func (mockViewServer) ListView(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return &structpb.Struct{}, nil
}

func (mockViewServer) ListScreens(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return &structpb.Struct{}, nil
}

func (mockViewServer) ListUniqueUsers(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return &structpb.Struct{}, nil
}

func TestRegisterServices_AllServicesRegistered(t *testing.T) {
	mockReg := &mockServiceRegistrar{}
	RegisterServices(mockReg, Deps{View: mockViewServer{}})

	want := []string{viewhandler.ServiceName, healthpb.Health_ServiceDesc.ServiceName}
	if len(mockReg.services) != len(want) {
		t.Fatalf("services = %v, want %v", mockReg.services, want)
	}
	for i := range want {
		if mockReg.services[i] != want[i] {
			t.Errorf("services[%d] = %q, want %q", i, mockReg.services[i], want[i])
		}
	}
}

func TestRegisterServices_ViewNotRegisteredWhenNil(t *testing.T) {
	mockReg := &mockServiceRegistrar{}
	RegisterServices(mockReg, Deps{})

	if len(mockReg.services) != 1 || mockReg.services[0] != healthpb.Health_ServiceDesc.ServiceName {
		t.Errorf("services = %v, want health only", mockReg.services)
	}
}

func TestRegisterServices_RealServer(t *testing.T) {
	s := grpc.NewServer()
	RegisterServices(s, Deps{View: mockViewServer{}})
	info := s.GetServiceInfo()
	if _, ok := info[viewhandler.ServiceName]; !ok {
		t.Error("ViewService not registered")
	}
	if got := len(info[viewhandler.ServiceName].Methods); got != 3 {
		t.Errorf("ViewService methods = %d, want 3", got)
	}
}

func TestPublicMethods(t *testing.T) {
	pm := PublicMethods()
	if !pm[healthpb.Health_Check_FullMethodName] {
		t.Error("health check should be public")
	}
	if pm[viewhandler.ListViewMethod] {
		t.Error("ListView must require auth")
	}
}
