package graph

import (
	"errors"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/seanacker/souberUp/internal/models"
	"github.com/seanacker/souberUp/internal/repository"
	"github.com/seanacker/souberUp/internal/service"
)

// Resolver bundles the services the schema delegates to. Resolvers stay
// thin: authentication checks plus a single service call each.
type Resolver struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Contacts *service.ContactService
	Usage    *service.UsageService
}

func NewSchema(r *Resolver) (graphql.Schema, error) {
	weeklyProgressType := graphql.NewObject(graphql.ObjectConfig{
		Name: "WeeklyProgress",
		Fields: graphql.Fields{
			"goalMinutes": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"totalMs":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"percent":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":               &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":             &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phoneNumber":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"usageGoalMinutes": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"weeklyProgress": &graphql.Field{
				Type: graphql.NewNonNull(weeklyProgressType),
				Args: graphql.FieldConfigArgument{
					"weekStart": &graphql.ArgumentConfig{Type: graphql.NewNonNull(dateScalar)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := p.Source.(userView)
					if !ok {
						return nil, errors.New("weeklyProgress: unexpected source")
					}
					weekStart, ok := p.Args["weekStart"].(time.Time)
					if !ok {
						return nil, errors.New("weekStart must be a date")
					}
					progress, err := r.Usage.WeeklyProgress(p.Context, user.ID, weekStart)
					if err != nil {
						return nil, err
					}
					return weeklyProgressView{
						GoalMinutes: progress.GoalMinutes,
						TotalMS:     progress.TotalMS,
						Percent:     progress.Percent,
					}, nil
				},
			},
		},
	})

	meType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Me",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phoneNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"accessToken":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"refreshToken": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"tokenType":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	registerInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RegisterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":             &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phoneNumber":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"usageGoalMinutes": &graphql.InputObjectFieldConfig{Type: graphql.Int, DefaultValue: 0},
		},
	})

	loginInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"phoneNumber": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userUpdateInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":             &graphql.InputObjectFieldConfig{Type: graphql.String},
			"usageGoalMinutes": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rc := FromContext(p.Context)
					if rc.User == nil {
						return nil, nil
					}
					return newUserView(*rc.User), nil
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller, err := currentUser(p)
					if err != nil {
						return nil, err
					}
					id, _ := p.Args["id"].(string)
					user, err := r.Users.Get(p.Context, caller.ID, id)
					if err != nil {
						if errors.Is(err, repository.ErrUserNotFound) {
							return nil, nil
						}
						return nil, err
					}
					return newUserView(user), nil
				},
			},
			"searchUsers": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Args: graphql.FieldConfigArgument{
					"q":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := currentUser(p); err != nil {
						return nil, err
					}
					q, _ := p.Args["q"].(string)
					limit, _ := p.Args["limit"].(int)
					users, err := r.Users.Search(p.Context, q, limit)
					if err != nil {
						return nil, err
					}
					views := make([]userView, 0, len(users))
					for _, user := range users {
						views = append(views, newUserView(user))
					}
					return views, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(meType),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(registerInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					data, _ := p.Args["data"].(map[string]interface{})
					input := service.RegisterInput{
						Name:        stringArg(data, "name"),
						PhoneNumber: stringArg(data, "phoneNumber"),
						Password:    stringArg(data, "password"),
					}
					if goal, ok := data["usageGoalMinutes"].(int); ok {
						input.UsageGoalMinutes = goal
					}
					user, err := r.Auth.Register(p.Context, input)
					if err != nil {
						return nil, err
					}
					return meView{ID: user.ID, Name: user.Name, PhoneNumber: user.PhoneNumber}, nil
				},
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					data, _ := p.Args["data"].(map[string]interface{})
					pair, err := r.Auth.Login(p.Context, service.LoginInput{
						PhoneNumber: stringArg(data, "phoneNumber"),
						Password:    stringArg(data, "password"),
					})
					if err != nil {
						return nil, err
					}
					return newAuthPayloadView(pair), nil
				},
			},
			"refreshToken": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"refreshToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					token, _ := p.Args["refreshToken"].(string)
					pair, err := r.Auth.Refresh(p.Context, token)
					if err != nil {
						return nil, err
					}
					return newAuthPayloadView(pair), nil
				},
			},
			"updateUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userUpdateInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller, err := currentUser(p)
					if err != nil {
						return nil, err
					}
					data, _ := p.Args["data"].(map[string]interface{})
					var input service.UserUpdateInput
					if name, ok := data["name"].(string); ok {
						input.Name = &name
					}
					if goal, ok := data["usageGoalMinutes"].(int); ok {
						input.UsageGoalMinutes = &goal
					}
					user, err := r.Users.Update(p.Context, caller.ID, input)
					if err != nil {
						return nil, err
					}
					return newUserView(user), nil
				},
			},
			"addContact": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"phoneNumber": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller, err := currentUser(p)
					if err != nil {
						return nil, err
					}
					phone, _ := p.Args["phoneNumber"].(string)
					other, err := r.Contacts.AddContact(p.Context, caller.ID, phone)
					if err != nil {
						return nil, err
					}
					return newUserView(other), nil
				},
			},
			"addDailyUsage": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"userId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"date":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(dateScalar)},
					"totalMs": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller, err := currentUser(p)
					if err != nil {
						return nil, err
					}
					userID, _ := p.Args["userId"].(string)
					date, ok := p.Args["date"].(time.Time)
					if !ok {
						return nil, errors.New("date must be a date")
					}
					totalMS, _ := p.Args["totalMs"].(int)
					if err := r.Usage.AddDailyUsage(p.Context, caller.ID, userID, date, int64(totalMS)); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// currentUser requires an authenticated caller.
func currentUser(p graphql.ResolveParams) (*models.User, error) {
	rc := FromContext(p.Context)
	if rc.User == nil {
		return nil, service.ErrAuthRequired
	}
	return rc.User, nil
}

func stringArg(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}
