package handler

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "counseling.v1.CounselingService"

// FullMethod returns the gRPC path of a method of this service.
func FullMethod(name string) string { return "/" + ServiceName + "/" + name }

type CounselingServer interface {
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	GetUser(context.Context, *GetUserRequest) (*UserResponse, error)
	CreateUser(context.Context, *CreateUserRequest) (*UserResponse, error)
	ListCounselors(context.Context, *ListCounselorsRequest) (*ListCounselorsResponse, error)
	GetCounselor(context.Context, *GetCounselorRequest) (*CounselorResponse, error)
	CreateCounselor(context.Context, *CreateCounselorRequest) (*CounselorResponse, error)
	GetCounselorAvailability(context.Context, *GetCounselorAvailabilityRequest) (*SlotsResponse, error)
	ListAvailability(context.Context, *ListAvailabilityRequest) (*SlotsResponse, error)
	AddAvailability(context.Context, *AddAvailabilityRequest) (*SlotsResponse, error)
	CreateAppointment(context.Context, *CreateAppointmentRequest) (*AppointmentResponse, error)
	GetAppointment(context.Context, *GetAppointmentRequest) (*AppointmentResponse, error)
	GetUserAppointments(context.Context, *GetUserAppointmentsRequest) (*AppointmentsResponse, error)
	UpdateAppointmentStatus(context.Context, *UpdateAppointmentStatusRequest) (*AppointmentResponse, error)
	SubmitScreening(context.Context, *SubmitScreeningRequest) (*ScreeningResponse, error)
	GetScreening(context.Context, *GetScreeningRequest) (*ScreeningResponse, error)
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error)
}

var _ CounselingServer = (*Handler)(nil)

// ServiceDesc is declared by hand; messages travel through Codec.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CounselingServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListUsers", CounselingServer.ListUsers),
		unary("GetUser", CounselingServer.GetUser),
		unary("CreateUser", CounselingServer.CreateUser),
		unary("ListCounselors", CounselingServer.ListCounselors),
		unary("GetCounselor", CounselingServer.GetCounselor),
		unary("CreateCounselor", CounselingServer.CreateCounselor),
		unary("GetCounselorAvailability", CounselingServer.GetCounselorAvailability),
		unary("ListAvailability", CounselingServer.ListAvailability),
		unary("AddAvailability", CounselingServer.AddAvailability),
		unary("CreateAppointment", CounselingServer.CreateAppointment),
		unary("GetAppointment", CounselingServer.GetAppointment),
		unary("GetUserAppointments", CounselingServer.GetUserAppointments),
		unary("UpdateAppointmentStatus", CounselingServer.UpdateAppointmentStatus),
		unary("SubmitScreening", CounselingServer.SubmitScreening),
		unary("GetScreening", CounselingServer.GetScreening),
		unary("HealthCheck", CounselingServer.HealthCheck),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "counseling/v1/counseling.proto",
}

func Register(s grpc.ServiceRegistrar, srv CounselingServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](name string, call func(CounselingServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CounselingServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(CounselingServer), ctx, req.(*Req))
			})
		},
	}
}
