package mobileapi

import (
	"net/http"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/request"
)

const (
	paramBody               = "body"
	paramPushRegistrationID = "pushRegistrationId"
)

var (
	authorization = request.Static("Authorization", "App ${api.key}")
	userAgent     = request.Static("User-Agent", "${user.agent}")
	accept        = request.Static("Accept", "application/json")
	platformQuery = request.Static("platformType", "${platform.type}")
	registration  = request.Arg("pushregistrationid", paramPushRegistrationID, true)
)

func body(v any) request.Values {
	return request.Values{paramBody: v}
}

// registered binds a request that also carries the installation's push
// registration ID. A nil request binds nothing, so required parameters fail
// the build.
func registered[R any](r *R, pushRegistrationID func(*R) string) request.Values {
	if r == nil {
		return request.Values{}
	}
	return request.Values{paramPushRegistrationID: pushRegistrationID(r), paramBody: r}
}

var opFetchBaseURL = request.NewOperation(request.Definition{
	Name:    "fetchBaseURL",
	Method:  http.MethodGet,
	Path:    "/mobile/1/baseurl",
	Headers: []request.Binding{authorization, userAgent, accept},
}, func(struct{}) request.Values { return request.Values{} })

var opCreateInstance = request.NewOperation(request.Definition{
	Name:    "createInstance",
	Method:  http.MethodPost,
	Path:    "/mobile/1/appinstance",
	Headers: []request.Binding{authorization, userAgent, accept},
	Queries: []request.Binding{request.Static("rt", "true")},
	Body:    &request.BodyBinding{Param: paramBody, Required: true},
}, func(i *Instance) request.Values { return body(i) })

var opSyncMessages = request.NewOperation(request.Definition{
	Name:    "syncMessages",
	Method:  http.MethodPost,
	Path:    "/mobile/5/messages",
	Headers: []request.Binding{authorization, userAgent, accept, registration},
	Queries: []request.Binding{platformQuery},
	Body:    &request.BodyBinding{Param: paramBody},
}, func(r *SyncRequest) request.Values {
	return registered(r, func(r *SyncRequest) string { return r.PushRegistrationID })
})

var opReportDelivery = request.NewOperation(request.Definition{
	Name:    "reportDelivery",
	Method:  http.MethodPost,
	Path:    "/mobile/1/messages/deliveryreport",
	Headers: []request.Binding{authorization, userAgent, accept, request.Arg("pushregistrationid", paramPushRegistrationID, false)},
	Body:    &request.BodyBinding{Param: paramBody, Required: true},
}, func(r *DeliveryReportRequest) request.Values {
	return registered(r, func(r *DeliveryReportRequest) string { return r.PushRegistrationID })
})

var opReportSeen = request.NewOperation(request.Definition{
	Name:    "reportSeen",
	Method:  http.MethodPost,
	Path:    "/mobile/2/messages/seen",
	Headers: []request.Binding{authorization, userAgent, accept, request.Arg("pushregistrationid", paramPushRegistrationID, false)},
	Body:    &request.BodyBinding{Param: paramBody, Required: true},
}, func(r *SeenReportRequest) request.Values {
	return registered(r, func(r *SeenReportRequest) string { return r.PushRegistrationID })
})

var opSendMO = request.NewOperation(request.Definition{
	Name:    "sendMO",
	Method:  http.MethodPost,
	Path:    "/mobile/1/messages/mo",
	Headers: []request.Binding{authorization, userAgent, accept, registration},
	Queries: []request.Binding{platformQuery},
	Body:    &request.BodyBinding{Param: paramBody, Required: true},
}, func(r *MORequest) request.Values {
	return registered(r, func(r *MORequest) string { return r.PushRegistrationID })
})

// opReportClick targets the tracking URL delivered with the message, so it has
// no path of its own.
var opReportClick = request.NewOperation(request.Definition{
	Name:         "reportClick",
	Method:       http.MethodGet,
	FullURLParam: "url",
	Headers: []request.Binding{
		authorization,
		request.Arg("pushRegistrationId", paramPushRegistrationID, true),
		request.Arg("buttonidx", "buttonIndex", false),
		request.Arg("User-Agent", "userAgent", false),
	},
}, func(c ClickReport) request.Values {
	return request.Values{
		"url":                   c.URL,
		paramPushRegistrationID: c.PushRegistrationID,
		"buttonIndex":           c.ButtonIndex,
		"userAgent":             c.UserAgent,
	}
})

var opFetchVersion = request.NewOperation(request.Definition{
	Name:    "fetchVersion",
	Method:  http.MethodGet,
	Path:    "/mobile/3/version",
	Headers: []request.Binding{authorization, userAgent, accept},
	Queries: []request.Binding{platformQuery},
}, func(struct{}) request.Values { return request.Values{} })

// Operations returns every operation the client can execute.
func Operations() []request.Definition {
	return []request.Definition{
		opFetchBaseURL.Definition(),
		opCreateInstance.Definition(),
		opSyncMessages.Definition(),
		opReportDelivery.Definition(),
		opReportSeen.Definition(),
		opSendMO.Definition(),
		opReportClick.Definition(),
		opFetchVersion.Definition(),
	}
}
