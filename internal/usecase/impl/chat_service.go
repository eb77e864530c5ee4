package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
	"fuelflow/internal/usecase"
	"fuelflow/internal/util"

	"github.com/pkg/errors"
)

// Chat tools.
const (
	toolProcessTransaction = "process_transaction"
	toolCustomerDetails    = "get_customer_details"
	toolAdminDetails       = "get_admin_details"
	toolDeliveryDetails    = "get_delivery_person_details"
	toolProductDetails     = "get_product_details"
	toolRefreshMemory      = "refresh_memory"
)

const chatSystemPrompt = `You are the assistant of a gas cylinder distribution business.
Use the tools to log deliveries and returns, and to look up customers, admins, delivery persons and products.
Sent units are what the customer received from us, received units are what the customer returned.
Answer briefly.`

var chatTools = []service.ToolDeclaration{
	{
		Name:        toolProcessTransaction,
		Description: "Log a business transaction where goods are delivered to a customer or returned by them.",
		Parameters: map[string]service.ToolParameter{
			"customer_name":     {Type: "string", Description: "The customer who bought or returned the item. In 'Sweta delivered to Rakesh', this is Rakesh."},
			"delivery_boy_name": {Type: "string", Description: "The delivery person who performed the task. In 'Sweta delivered to Rakesh', this is Sweta."},
			"product_name":      {Type: "string", Description: "Name of the product, e.g. LPG 14KG or Oxygen."},
			"sent_units":        {Type: "number", Description: "Quantity delivered to the customer. Use this for 'delivered', 'gave' or 'sold'."},
			"received_units":    {Type: "number", Description: "Quantity returned by the customer. Use this for 'returned', 'got back' or 'received from'."},
			"payment_amount":    {Type: "number", Description: "Payment collected, if any."},
		},
		Required: []string{"customer_name", "product_name", "delivery_boy_name"},
	},
	{
		Name:        toolCustomerDetails,
		Description: "Retrieve full profile details for a specific customer by name.",
		Parameters:  map[string]service.ToolParameter{"customer_name": {Type: "string", Description: "Name of the customer to search for."}},
		Required:    []string{"customer_name"},
	},
	{
		Name:        toolAdminDetails,
		Description: "Retrieve full profile details for a specific admin by name.",
		Parameters:  map[string]service.ToolParameter{"admin_name": {Type: "string", Description: "Name of the admin to search for."}},
		Required:    []string{"admin_name"},
	},
	{
		Name:        toolDeliveryDetails,
		Description: "Retrieve full profile details for a specific delivery person by name.",
		Parameters:  map[string]service.ToolParameter{"delivery_boy_name": {Type: "string", Description: "Name of the delivery person to search for."}},
		Required:    []string{"delivery_boy_name"},
	},
	{
		Name:        toolProductDetails,
		Description: "Retrieve full details for a specific product by name.",
		Parameters:  map[string]service.ToolParameter{"product_name": {Type: "string", Description: "Name of the product to search for."}},
		Required:    []string{"product_name"},
	},
	{
		Name:        toolRefreshMemory,
		Description: "Reload the data from the server. Use this when data seems outdated.",
	},
}

type chatService struct {
	model        service.ChatModel
	customerRepo repository.CustomerRepository
	personRepo   repository.DeliveryPersonRepository
	productRepo  repository.ProductRepository
	adminRepo    repository.AdminRepository
	entryRepo    repository.EntryRepository
	syncer       usecase.SyncUsecase
	logger       *slog.Logger
	now          clock
}

// NewChatService creates the chat agent usecase. A nil model disables it.
func NewChatService(
	model service.ChatModel,
	customerRepo repository.CustomerRepository,
	personRepo repository.DeliveryPersonRepository,
	productRepo repository.ProductRepository,
	adminRepo repository.AdminRepository,
	entryRepo repository.EntryRepository,
	syncer usecase.SyncUsecase,
	logger *slog.Logger,
) usecase.ChatUsecase {
	return &chatService{
		model:        model,
		customerRepo: customerRepo,
		personRepo:   personRepo,
		productRepo:  productRepo,
		adminRepo:    adminRepo,
		entryRepo:    entryRepo,
		syncer:       syncer,
		logger:       logger,
		now:          time.Now,
	}
}

func (srv *chatService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Chat answers one message. Only the first function call of the model's
// reply is executed. Failures come back as a warning, not as an error.
func (srv *chatService) Chat(ctx context.Context, message string) (*usecase.ChatResponse, error) {
	if srv.model == nil {
		return nil, errors.WithStack(domainerrors.ErrChatUnavailable)
	}

	session, err := srv.model.StartChat(ctx, chatSystemPrompt, chatTools)
	if err != nil {
		return srv.systemWarning(ctx, err), nil
	}
	reply, err := session.SendText(ctx, message)
	if err != nil {
		return srv.systemWarning(ctx, err), nil
	}
	if len(reply.Calls) == 0 {
		return &usecase.ChatResponse{Response: reply.Text}, nil
	}

	call := reply.Calls[0]
	srv.log(ctx).Info("Chat function call", slog.String("name", call.Name), slog.Any("args", call.Args))

	switch call.Name {
	case toolProcessTransaction:
		return srv.processTransaction(ctx, call.Args), nil
	case toolCustomerDetails:
		return describe(ctx, srv, session, call, "Customers", argString(call.Args, "customer_name"), srv.findCustomers, func(c *entity.Customer) any { return c.Data }), nil
	case toolAdminDetails:
		return describe(ctx, srv, session, call, "Admins", argString(call.Args, "admin_name"), srv.findAdmins, func(a *entity.Admin) any { return a.Data }), nil
	case toolDeliveryDetails:
		return describe(ctx, srv, session, call, "Delivery Person(s)", argString(call.Args, "delivery_boy_name"), srv.findPersons, func(p *entity.DeliveryPerson) any { return p.Data }), nil
	case toolProductDetails:
		return describe(ctx, srv, session, call, "Product(s)", argString(call.Args, "product_name"), srv.findProducts, func(p *entity.Product) any { return p.Data }), nil
	case toolRefreshMemory:
		if err := srv.refresh(ctx, constants.TopicCustomers, constants.TopicDeliveryPersons, constants.TopicProducts, constants.TopicAdmins); err != nil {
			return srv.systemWarning(ctx, err), nil
		}

		return &usecase.ChatResponse{Response: "Memory Refreshed! Please ask me what you need again."}, nil
	default:
		return &usecase.ChatResponse{Response: reply.Text}, nil
	}
}

func (srv *chatService) findCustomers(ctx context.Context, name string) ([]*entity.Customer, error) {
	return searchOnce(ctx, srv, constants.TopicCustomers, name, srv.customerRepo.Search)
}

func (srv *chatService) findAdmins(ctx context.Context, name string) ([]*entity.Admin, error) {
	return searchOnce(ctx, srv, constants.TopicAdmins, name, srv.adminRepo.Search)
}

func (srv *chatService) findPersons(ctx context.Context, name string) ([]*entity.DeliveryPerson, error) {
	return searchOnce(ctx, srv, constants.TopicDeliveryPersons, name, srv.personRepo.Search)
}

func (srv *chatService) findProducts(ctx context.Context, name string) ([]*entity.Product, error) {
	return searchOnce(ctx, srv, constants.TopicProducts, name, srv.productRepo.Search)
}

// searchOnce searches one repository by name, refreshing it once when nothing matches.
func searchOnce[T any](ctx context.Context, srv *chatService, topic, name string, search func(context.Context, string) ([]*T, error)) ([]*T, error) {
	if name == "" {
		return nil, nil
	}
	found, err := search(ctx, name)
	if err != nil || len(found) > 0 {
		return found, err
	}
	if err := srv.refresh(ctx, topic); err != nil {
		return nil, err
	}

	return search(ctx, name)
}

func (srv *chatService) refresh(ctx context.Context, topics ...string) error {
	for _, topic := range topics {
		if err := srv.syncer.Refresh(ctx, topic); err != nil {
			return err
		}
	}

	return nil
}

// describe answers a details lookup. A single match is handed back to the
// model to phrase the answer; several matches let the user pick.
func describe[T any](
	ctx context.Context,
	srv *chatService,
	session service.ChatSession,
	call service.FunctionCall,
	plural, name string,
	find func(context.Context, string) ([]*T, error),
	view func(*T) any,
) *usecase.ChatResponse {
	found, err := find(ctx, name)
	if err != nil {
		return srv.systemWarning(ctx, err)
	}

	switch len(found) {
	case 0:
		return &usecase.ChatResponse{Warning: &usecase.ChatWarning{
			Text: fmt.Sprintf("Nothing named '%s' found.", name),
		}}
	case 1:
		object := view(found[0])
		resp := &usecase.ChatResponse{Response: fmt.Sprintf("1 of %s found.", plural), Context: object}
		reply, err := session.SendFunctionResults(ctx, []service.FunctionResult{{
			ID:       call.ID,
			Name:     call.Name,
			Response: map[string]any{"result": object},
		}})
		if err != nil {
			srv.log(ctx).Warn("Failed to send function result", slog.String("name", call.Name), slog.Any("error", err))
		} else if reply.Text != "" {
			resp.Response = reply.Text
		}

		return resp
	default:
		objects := make([]any, len(found))
		for i, item := range found {
			objects[i] = view(item)
		}

		return &usecase.ChatResponse{
			Response:    fmt.Sprintf("%d %s found.", len(found), plural),
			ObjectArray: objects,
			Action:      usecase.ChatActionRedirect,
		}
	}
}

func (srv *chatService) processTransaction(ctx context.Context, args map[string]any) *usecase.ChatResponse {
	customerName := argString(args, "customer_name")
	customers, err := srv.findCustomers(ctx, customerName)
	if resp := pickOne(ctx, srv, customers, err, "Customers", "customer", customerName, func(c *entity.Customer) any { return c.Data }); resp != nil {
		return resp
	}
	personName := argString(args, "delivery_boy_name")
	persons, err := srv.findPersons(ctx, personName)
	if resp := pickOne(ctx, srv, persons, err, "Delivery Person", "delivery person", personName, func(p *entity.DeliveryPerson) any { return p.Data }); resp != nil {
		return resp
	}
	productName := argString(args, "product_name")
	products, err := srv.findProducts(ctx, productName)
	if resp := pickOne(ctx, srv, products, err, "Products", "product", productName, func(p *entity.Product) any { return p.Data }); resp != nil {
		return resp
	}

	customer, person, product := customers[0], persons[0], products[0]
	sent := int(math.Round(argNumber(args, "sent_units")))
	received := int(math.Round(argNumber(args, "received_units")))

	total := float64(sent) * product.Data.Rate
	payment := total
	if _, ok := args["payment_amount"]; ok {
		payment = argNumber(args, "payment_amount")
	}
	status := "Pending"
	if payment >= total {
		status = "Paid"
	}

	address := customer.Data.Address
	if len(customer.Data.ShippingAddress) > 0 {
		address = customer.Data.ShippingAddress[0]
	}

	now := srv.now()
	nowMillis := util.EpochMillis(now)
	entry := &entity.EntryTransaction{
		Data: entity.EntryData{
			TransactionID:   util.TransactionID(now, now),
			Date:            now.Format(entity.EntryDateLayout),
			Customer:        customer.UserData(),
			ShippingAddress: address,
			DeliveryBoyList: []entity.DeliveryDone{{
				UserData: person.UserData(),
				DeliveryDone: []entity.DeliveryUnits{{
					ProductID:     product.Data.ProductID,
					SentUnits:     sent,
					RecievedUnits: received,
				}},
			}},
			SelectedProducts: []entity.ProductQuantity{{
				ProductData:   product.Snapshot(),
				SentUnits:     sent,
				RecievedUnits: received,
			}},
			Total:        total,
			Payment:      payment,
			Status:       status,
			ExtraDetails: "Logged via AI Agent",
		},
		Others: entity.Audit{
			CreatedBy:   constants.AIAgentAuthor,
			CreatedTime: nowMillis,
			EditedBy:    constants.AIAgentAuthor,
			EditedTime:  nowMillis,
		},
	}

	if err := srv.entryRepo.Save(ctx, entry); err != nil {
		srv.log(ctx).Error("Chat agent failed to save transaction", slog.Any("error", err))

		return &usecase.ChatResponse{Warning: &usecase.ChatWarning{
			Text:   "DB ERROR: " + err.Error(),
			Action: usecase.ChatActionCallAdmin,
		}}
	}
	srv.log(ctx).Info("Chat agent logged transaction",
		slog.String("transaction_id", entry.ID()),
		slog.String("customer_id", customer.Data.UserID),
	)

	return &usecase.ChatResponse{
		Response: fmt.Sprintf("SUCCESS: Logged entry for %s.", customer.Data.FullName),
		Context:  entry,
	}
}

// pickOne returns nil when exactly one item was found, otherwise the response
// that stops the transaction.
func pickOne[T any](ctx context.Context, srv *chatService, found []*T, err error, plural, kind, name string, view func(*T) any) *usecase.ChatResponse {
	if err != nil {
		return srv.systemWarning(ctx, err)
	}

	switch len(found) {
	case 1:
		return nil
	case 0:
		return &usecase.ChatResponse{Warning: &usecase.ChatWarning{
			Text: fmt.Sprintf("No %s named '%s'. Hence cant proceed!", kind, name),
		}}
	default:
		objects := make([]any, len(found))
		for i, item := range found {
			objects[i] = view(item)
		}

		return &usecase.ChatResponse{
			Response:    fmt.Sprintf("%d %s found. Please provide full name to be specific!", len(found), plural),
			ObjectArray: objects,
			Action:      usecase.ChatActionRedirect,
		}
	}
}

func (srv *chatService) systemWarning(ctx context.Context, err error) *usecase.ChatResponse {
	srv.log(ctx).Error("Chat agent failed", slog.Any("error", err))

	return &usecase.ChatResponse{Warning: &usecase.ChatWarning{
		Text:   "SYSTEM ERROR: " + err.Error(),
		Action: usecase.ChatActionCallAdmin,
	}}
}

func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)

	return s
}

func argNumber(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
