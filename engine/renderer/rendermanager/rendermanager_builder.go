package rendermanager

// RenderManagerOption configures a RenderManager during construction.
type RenderManagerOption func(*renderManagerImpl)
