package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
	"github.com/joseph-ayodele/foreclosure-parser/internal/entity"
	"github.com/joseph-ayodele/foreclosure-parser/internal/repository"
)

const caseServiceName = "foreclosure.v1.CaseService"

// CaseServiceServer is the read-only case API. Requests and responses are
// google.protobuf.Struct so the service needs no generated stubs.
type CaseServiceServer interface {
	ListCases(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCase(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// CaseServiceDesc describes foreclosure.v1.CaseService for grpc.Server.RegisterService.
var CaseServiceDesc = grpc.ServiceDesc{
	ServiceName: caseServiceName,
	HandlerType: (*CaseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListCases", Handler: unaryHandler("ListCases", CaseServiceServer.ListCases)},
		{MethodName: "GetCase", Handler: unaryHandler("GetCase", CaseServiceServer.GetCase)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "foreclosure/v1/cases.proto",
}

func RegisterCaseServiceServer(s grpc.ServiceRegistrar, srv CaseServiceServer) {
	s.RegisterService(&CaseServiceDesc, srv)
}

type caseMethod func(CaseServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, method caseMethod) grpc.MethodHandler {
	fullMethod := "/" + caseServiceName + "/" + name
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(CaseServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return method(srv.(CaseServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CaseService serves stored cases over gRPC.
type CaseService struct {
	caseRepo repository.CaseRepository
	logger   *slog.Logger
}

func NewCaseService(caseRepo repository.CaseRepository, logger *slog.Logger) *CaseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CaseService{caseRepo: caseRepo, logger: logger}
}

func (s *CaseService) ListCases(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	cases, err := s.caseRepo.ListCases(ctx)
	if err != nil {
		s.logger.Error("failed to list cases", "error", err)
		return nil, common.GRPCError(err)
	}

	items := make([]any, 0, len(cases))
	for _, c := range cases {
		items = append(items, caseFields(c))
	}
	out, err := structpb.NewStruct(map[string]any{
		"cases": items,
		"count": len(cases),
	})
	if err != nil {
		return nil, common.InternalErrorf("encode cases: %v", err)
	}
	s.logger.Info("cases listed", "count", len(cases))
	return out, nil
}

func (s *CaseService) GetCase(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	index := strings.TrimSpace(req.GetFields()["index_number"].GetStringValue())
	if err := common.ValidateAndReturnError(common.NewValidator().Field("index_number", index, common.Required)); err != nil {
		s.logger.Error("invalid get case request", "error", err)
		return nil, err
	}

	c, err := s.caseRepo.GetCase(ctx, index)
	if err != nil {
		s.logger.Warn("failed to get case", "index_number", index, "error", err)
		return nil, common.GRPCError(err)
	}
	out, err := structpb.NewStruct(caseFields(*c))
	if err != nil {
		return nil, common.InternalErrorf("encode case: %v", err)
	}
	return out, nil
}

// caseFields renders a stored case keyed by output column, plus store metadata.
func caseFields(c entity.StoredCase) map[string]any {
	row := c.RowMap()
	m := make(map[string]any, len(row)+3)
	for k, v := range row {
		m[k] = v
	}
	m["run_id"] = c.RunID
	m["seq"] = c.Seq
	m["updated_at"] = c.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return m
}

// CaseClient calls foreclosure.v1.CaseService over an existing connection.
type CaseClient struct {
	cc grpc.ClientConnInterface
}

func NewCaseClient(cc grpc.ClientConnInterface) *CaseClient {
	return &CaseClient{cc: cc}
}

func (c *CaseClient) ListCases(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+caseServiceName+"/ListCases", &structpb.Struct{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CaseClient) GetCase(ctx context.Context, indexNumber string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]any{"index_number": indexNumber})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+caseServiceName+"/GetCase", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
