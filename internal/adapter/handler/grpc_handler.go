package handler

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
)

const ServiceName = "storefront.v1.Storefront"

// jsonCodec lets clients call the service with JSON bodies by setting the
// "json" content subtype.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string { return "json" }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type IDRequest struct {
	ID string `json:"id"`
}

type AddProductRequest struct {
	Product domain.Product `json:"product"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
}

type CheckoutRequest struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

type ProductResponse struct {
	Product domain.Product `json:"product"`
}

type CartResponse struct {
	Cart    service.CartView `json:"cart"`
	Warning string           `json:"warning,omitempty"`
}

type TransactionResponse struct {
	Transaction domain.Transaction `json:"transaction"`
}

type TransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type SummaryResponse struct {
	Summary service.SalesSummary `json:"summary"`
}

type StorefrontServer interface {
	ListProducts(context.Context, *Empty) (*ProductsResponse, error)
	AddProduct(context.Context, *AddProductRequest) (*ProductResponse, error)
	DeleteProduct(context.Context, *IDRequest) (*Empty, error)
	GetCart(context.Context, *Empty) (*CartResponse, error)
	AddToCart(context.Context, *AddToCartRequest) (*CartResponse, error)
	UpdateQuantity(context.Context, *UpdateQuantityRequest) (*CartResponse, error)
	RemoveItem(context.Context, *IDRequest) (*CartResponse, error)
	ClearCart(context.Context, *Empty) (*CartResponse, error)
	Checkout(context.Context, *CheckoutRequest) (*TransactionResponse, error)
	ListTransactions(context.Context, *Empty) (*TransactionsResponse, error)
	DeleteTransaction(context.Context, *IDRequest) (*Empty, error)
	Summary(context.Context, *Empty) (*SummaryResponse, error)
}

var storefrontServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StorefrontServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListProducts", StorefrontServer.ListProducts),
		unary("AddProduct", StorefrontServer.AddProduct),
		unary("DeleteProduct", StorefrontServer.DeleteProduct),
		unary("GetCart", StorefrontServer.GetCart),
		unary("AddToCart", StorefrontServer.AddToCart),
		unary("UpdateQuantity", StorefrontServer.UpdateQuantity),
		unary("RemoveItem", StorefrontServer.RemoveItem),
		unary("ClearCart", StorefrontServer.ClearCart),
		unary("Checkout", StorefrontServer.Checkout),
		unary("ListTransactions", StorefrontServer.ListTransactions),
		unary("DeleteTransaction", StorefrontServer.DeleteTransaction),
		unary("Summary", StorefrontServer.Summary),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/storefront",
}

func unary[Req, Resp any](name string, call func(StorefrontServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				resp, err := call(srv.(StorefrontServer), ctx, in)
				return resp, err
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				resp, err := call(srv.(StorefrontServer), ctx, req.(*Req))
				return resp, err
			})
		},
	}
}

var _ StorefrontServer = (*GRPCHandler)(nil)

type GRPCHandler struct {
	storefront *service.Storefront
}

func NewGRPCHandler(storefront *service.Storefront) *GRPCHandler {
	return &GRPCHandler{storefront: storefront}
}

// Register adds the storefront service and the standard health service to s.
func (h *GRPCHandler) Register(s *grpc.Server) {
	s.RegisterService(&storefrontServiceDesc, h)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
}

func (h *GRPCHandler) ListProducts(ctx context.Context, _ *Empty) (*ProductsResponse, error) {
	return &ProductsResponse{Products: h.storefront.Products()}, nil
}

func (h *GRPCHandler) AddProduct(ctx context.Context, req *AddProductRequest) (*ProductResponse, error) {
	p, err := h.storefront.AddProduct(ctx, req.Product)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ProductResponse{Product: p}, nil
}

func (h *GRPCHandler) DeleteProduct(ctx context.Context, req *IDRequest) (*Empty, error) {
	if err := h.storefront.DeleteProduct(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (h *GRPCHandler) GetCart(ctx context.Context, _ *Empty) (*CartResponse, error) {
	return &CartResponse{Cart: h.storefront.Cart()}, nil
}

func (h *GRPCHandler) AddToCart(ctx context.Context, req *AddToCartRequest) (*CartResponse, error) {
	if req.ProductID == "" {
		return nil, status.Error(codes.InvalidArgument, "missing product_id")
	}
	return cartResponse(h.storefront.AddToCart(ctx, req.ProductID))
}

func (h *GRPCHandler) UpdateQuantity(ctx context.Context, req *UpdateQuantityRequest) (*CartResponse, error) {
	return cartResponse(h.storefront.UpdateQuantity(ctx, req.ProductID, req.Delta))
}

func (h *GRPCHandler) RemoveItem(ctx context.Context, req *IDRequest) (*CartResponse, error) {
	return cartResponse(h.storefront.RemoveItem(ctx, req.ID))
}

func (h *GRPCHandler) ClearCart(ctx context.Context, _ *Empty) (*CartResponse, error) {
	return cartResponse(h.storefront.ClearCart(ctx))
}

func (h *GRPCHandler) Checkout(ctx context.Context, req *CheckoutRequest) (*TransactionResponse, error) {
	tx, err := h.storefront.Checkout(ctx, req.PaymentMethod)
	if err != nil {
		return nil, toStatus(err)
	}
	return &TransactionResponse{Transaction: tx}, nil
}

func (h *GRPCHandler) ListTransactions(ctx context.Context, _ *Empty) (*TransactionsResponse, error) {
	return &TransactionsResponse{Transactions: h.storefront.Transactions()}, nil
}

func (h *GRPCHandler) DeleteTransaction(ctx context.Context, req *IDRequest) (*Empty, error) {
	if err := h.storefront.DeleteTransaction(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (h *GRPCHandler) Summary(ctx context.Context, _ *Empty) (*SummaryResponse, error) {
	return &SummaryResponse{Summary: h.storefront.Summary()}, nil
}

func cartResponse(view service.CartView, err error) (*CartResponse, error) {
	if err == nil {
		return &CartResponse{Cart: view}, nil
	}
	if errors.Is(err, service.ErrPersistence) {
		return &CartResponse{Cart: view, Warning: "cart not saved: " + err.Error()}, nil
	}
	return nil, toStatus(err)
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrPersistence):
		return status.Error(codes.Unavailable, "storage unavailable, please retry")
	}
	return status.Error(codes.Internal, "internal error")
}
