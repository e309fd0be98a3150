package telnet

// defaultOptionHandlers returns one instance of every option handler
// this engine ships, in no particular order — registration order does
// not affect behavior since each handler only ever claims its own
// option's (state, trigger) pairs (spec.md §4.D).
func defaultOptionHandlers() []optionHandler {
	return []optionHandler{
		echoHandler{},
		sgaHandler{},
		eorHandler{},
		ttypeHandler{},
		nawsHandler{},
		charsetHandler{},
		msdpHandler{},
		gmcpHandler{},
		msspHandler{},
		mccp2Handler,
		mccp3Handler,
		authHandler{},
		encryptHandler{},
		xdisplayHandler{},
		tspeedHandler{},
		newenvironHandler{},
		environHandler{},
		linemodeHandler{},
		flowControlHandler{},
	}
}
