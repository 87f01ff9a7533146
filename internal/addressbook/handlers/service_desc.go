package handlers

import (
	"context"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "connectify.v1.AddressBookService"

// AddressBookServer is the server API for the address book service.
// Requests and responses are google.protobuf.Struct messages.
type AddressBookServer interface {
	AddPerson(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeletePerson(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EditPerson(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EditCompanyPerson(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddCompany(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteCompany(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EditCompany(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddPersonToCompany(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEntities(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCompanies(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListPeople(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Rank(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Exit(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type rpc func(AddressBookServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// route binds an RPC to its HTTP gateway path.
type route struct {
	method     string
	httpMethod string
	pattern    string
	call       rpc
}

var routes = []route{
	{"AddPerson", http.MethodPost, "/v1/persons", AddressBookServer.AddPerson},
	{"DeletePerson", http.MethodDelete, "/v1/persons/{index}", AddressBookServer.DeletePerson},
	{"EditPerson", http.MethodPatch, "/v1/persons/{index}", AddressBookServer.EditPerson},
	{"EditCompanyPerson", http.MethodPatch, "/v1/companies/{company_index}/persons/{index}", AddressBookServer.EditCompanyPerson},
	{"AddCompany", http.MethodPost, "/v1/companies", AddressBookServer.AddCompany},
	{"DeleteCompany", http.MethodDelete, "/v1/companies/{index}", AddressBookServer.DeleteCompany},
	{"EditCompany", http.MethodPatch, "/v1/companies/{index}", AddressBookServer.EditCompany},
	{"AddPersonToCompany", http.MethodPost, "/v1/companies/{company_index}/persons/{person_index}", AddressBookServer.AddPersonToCompany},
	{"ListEntities", http.MethodGet, "/v1/entities", AddressBookServer.ListEntities},
	{"ListCompanies", http.MethodGet, "/v1/companies", AddressBookServer.ListCompanies},
	{"ListPeople", http.MethodGet, "/v1/persons", AddressBookServer.ListPeople},
	{"Rank", http.MethodPost, "/v1/rank", AddressBookServer.Rank},
	{"Exit", http.MethodPost, "/v1/exit", AddressBookServer.Exit},
}

// FullMethod returns the gRPC method path for name.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// mutates reports whether the route changes the address book. Reads are
// exactly the GET routes, which keeps gRPC and HTTP protection aligned.
func (r route) mutates() bool {
	return r.httpMethod != http.MethodGet
}

// MutatingMethods returns the full gRPC method names of every operation that
// changes the address book.
func MutatingMethods() []string {
	var out []string
	for _, r := range routes {
		if r.mutates() {
			out = append(out, FullMethod(r.method))
		}
	}
	return out
}

func methodDesc(r route) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: r.method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return r.call(srv.(AddressBookServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(r.method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return r.call(srv.(AddressBookServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the address book service for grpc.Server.RegisterService.
var ServiceDesc = func() grpc.ServiceDesc {
	methods := make([]grpc.MethodDesc, 0, len(routes))
	for _, r := range routes {
		methods = append(methods, methodDesc(r))
	}
	return grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*AddressBookServer)(nil),
		Methods:     methods,
		Streams:     []grpc.StreamDesc{},
		Metadata:    "connectify/v1/address_book.proto",
	}
}()
